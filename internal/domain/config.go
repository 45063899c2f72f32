package domain

// Config represents the polycheck configuration loaded from polycheck.yaml.
type Config struct {
	Defaults DefaultsConfig
	Elements ElementMap
	Paths    PathsConfig
}

type DefaultsConfig struct {
	Domain Domain
	Format string
}

type PathsConfig struct {
	ReportsDir string
}

// DefaultConfig provides sane defaults if polycheck.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{
			Domain: Algebra,
			Format: "pretty",
		},
		Elements: DefaultElements(),
		Paths: PathsConfig{
			ReportsDir: "reports",
		},
	}
}
