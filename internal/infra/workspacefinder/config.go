package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/polycheck/internal/domain"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the workspace marker and configuration file name.
const ConfigFile = "polycheck.yaml"

// Formats lists the accepted values of defaults.format.
var Formats = []string{"pretty", "json", "yaml"}

// LoadConfig loads polycheck.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, invalidConfig(path, err)
	}

	// Apply parsed values on top of defaults.
	if s := strings.TrimSpace(y.Polycheck.Defaults.Domain); s != "" {
		d, err := domain.ParseDomain(s)
		if err != nil {
			return cfg, invalidConfig(path, fmt.Errorf("defaults.domain: %w", err))
		}
		cfg.Defaults.Domain = d
	}
	if s := strings.ToLower(strings.TrimSpace(y.Polycheck.Defaults.Format)); s != "" {
		if !validFormat(s) {
			return cfg, invalidConfig(path,
				fmt.Errorf("defaults.format %q (expected %s): %w", s, strings.Join(Formats, "|"), domain.ErrInvalidConfig))
		}
		cfg.Defaults.Format = s
	}
	for name, raw := range y.Polycheck.Elements {
		name = strings.TrimSpace(name)
		if name == "" {
			return cfg, invalidConfig(path, fmt.Errorf("elements: empty element name: %w", domain.ErrInvalidConfig))
		}
		d, err := domain.ParseDomain(raw)
		if err != nil {
			return cfg, invalidConfig(path, fmt.Errorf("elements.%s: %w", name, err))
		}
		cfg.Elements[name] = d
	}
	if y.Polycheck.Paths.ReportsDir != "" {
		cfg.Paths.ReportsDir = y.Polycheck.Paths.ReportsDir
	}

	return cfg, nil
}

func validFormat(s string) bool {
	for _, f := range Formats {
		if f == s {
			return true
		}
	}
	return false
}

func invalidConfig(path string, err error) error {
	return &domain.OpError{
		Op:   "workspacefinder.loadconfig",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  err,
	}
}

type yamlConfig struct {
	Polycheck struct {
		Defaults struct {
			Domain string `yaml:"domain"`
			Format string `yaml:"format"`
		} `yaml:"defaults"`

		// Extra element names that open a domain scope.
		Elements map[string]string `yaml:"elements"`

		Paths struct {
			ReportsDir string `yaml:"reports_dir"`
		} `yaml:"paths"`
	} `yaml:"polycheck"`
}
