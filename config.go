package cratepath

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/cratepath/inspector/repository"
	"github.com/viant/cratepath/resolver"
	"gopkg.in/yaml.v3"
)

const (
	manifestDirEnv = "CARGO_MANIFEST_DIR"
	cargoHomeEnv   = "CARGO_HOME"
)

// Config represents query service config
type Config struct {
	// ManifestDir is the directory holding Cargo.toml of the analyzed package
	ManifestDir string `yaml:"manifestDir"`
	// CargoHome holds registry/src with dependency sources
	CargoHome    string `yaml:"cargoHome"`
	SourceDir    string `yaml:"sourceDir"`
	EntryFile    string `yaml:"entryFile"`
	IndexFile    string `yaml:"indexFile"`
	Extension    string `yaml:"extension"`
	StrictSyntax bool   `yaml:"strictSyntax"`
	LogLevel     string `yaml:"logLevel"`
}

// DefaultConfig returns default config
func DefaultConfig() *Config {
	layout := resolver.DefaultLayout()
	return &Config{
		SourceDir: layout.SourceDir,
		EntryFile: layout.EntryFile,
		IndexFile: layout.IndexFile,
		Extension: layout.Extension,
		LogLevel:  "error",
	}
}

// LoadConfig loads YAML config from URL over defaults
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config: %v", URL)
	}
	config := DefaultConfig()
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config: %v", URL)
	}
	return config, nil
}

// Init fills unset locations from the environment, then from the package enclosing the working directory
func (c *Config) Init() error {
	if c.CargoHome == "" {
		c.CargoHome = os.Getenv(cargoHomeEnv)
	}
	if c.ManifestDir == "" {
		c.ManifestDir = os.Getenv(manifestDirEnv)
	}
	if c.ManifestDir != "" {
		return nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get working directory")
	}
	project, err := repository.New().DetectProject(wd)
	if err != nil {
		return errors.Wrapf(err, "failed to detect cargo package from %v", wd)
	}
	c.ManifestDir = project.RootPath
	return nil
}

// Layout returns the source layout
func (c *Config) Layout() resolver.Layout {
	layout := resolver.Layout{
		SourceDir: c.SourceDir,
		EntryFile: c.EntryFile,
		IndexFile: c.IndexFile,
		Extension: c.Extension,
	}
	layout.Init()
	return layout
}
