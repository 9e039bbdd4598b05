package config

// Config is the root configuration structure.
type Config struct {
	Scan ScanConfig `json:"scan"`
	UI   UIConfig   `json:"ui"`
}

// ScanConfig configures discovery.
type ScanConfig struct {
	// Root is the directory scans start from.
	Root string `json:"root"`
	// Target is the build-output directory name under a project root.
	Target string `json:"target"`
	// Exclude prunes paths with a component containing any of these.
	Exclude []string `json:"exclude"`
	// ExcludeHidden prunes dot-directories.
	ExcludeHidden bool `json:"excludeHidden"`
	// IncludeCache measures the shared registry/git caches per scan.
	IncludeCache bool `json:"includeCache"`
	// Sort is one of "size", "path", "lastmod".
	Sort string `json:"sort"`
}

// UIConfig configures presentation.
type UIConfig struct {
	// GB shows sizes in gigabytes instead of megabytes.
	GB bool `json:"gb"`
	// HideErrors silences recoverable walk errors.
	HideErrors bool `json:"hideErrors"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Root:   ".",
			Target: "target",
			Sort:   "size",
		},
		UI: UIConfig{},
	}
}

// Validate checks the configuration for errors and repairs what it can.
func (c *Config) Validate() error {
	if c.Scan.Root == "" {
		c.Scan.Root = "."
	}
	if c.Scan.Target == "" {
		c.Scan.Target = "target"
	}
	switch c.Scan.Sort {
	case "size", "path", "lastmod":
	default:
		c.Scan.Sort = "size"
	}
	return nil
}
