package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aalvaropc/polycheck/internal/domain"
	"github.com/aalvaropc/polycheck/internal/ports"
)

// Finder locates a polycheck workspace root by searching for polycheck.yaml upward.
type Finder struct {
	ConfigFile string // defaults to polycheck.yaml
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: ConfigFile}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindIO,
			Path: startDir,
			Err:  err,
		}
	}

	// A document path searches from its directory.
	if info, statErr := os.Stat(abs); statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	name := f.ConfigFile
	if name == "" {
		name = ConfigFile
	}

	for cur := filepath.Clean(abs); ; {
		if _, err := os.Stat(filepath.Join(cur, name)); err == nil {
			return cur, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "workspacefinder.findroot",
				Kind: domain.KindNotFound,
				Path: abs,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}

// Workspace is the outcome of Resolve.
type Workspace struct {
	Root   string
	Config domain.Config
	// Found is false when no polycheck.yaml exists above the start
	// directory; Root is then the start directory itself.
	Found bool
}

// Resolve finds the workspace containing startDir and loads its config.
// When no workspace exists it falls back to startDir with the default
// config. A workspace with a broken config is still an error.
func Resolve(startDir string) (Workspace, error) {
	root, err := NewFinder().FindRoot(startDir)
	if err != nil {
		if !domain.IsKind(err, domain.KindNotFound) {
			return Workspace{Config: domain.DefaultConfig()}, err
		}
		fallback, absErr := filepath.Abs(startDir)
		if absErr != nil {
			fallback = startDir
		}
		if info, statErr := os.Stat(fallback); statErr == nil && !info.IsDir() {
			fallback = filepath.Dir(fallback)
		}
		return Workspace{Root: fallback, Config: domain.DefaultConfig()}, nil
	}

	cfg, err := LoadConfig(root)
	return Workspace{Root: root, Config: cfg, Found: err == nil}, err
}
