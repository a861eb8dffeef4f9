package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = ".readmegen.yaml"

type Config struct {
	Readme string `yaml:"readme"` // markdown file to rewrite
	Values string `yaml:"values"` // parameter manifest
	Regexp struct {
		// ParamsSectionTitle is a regexp fragment matched after the heading markers.
		ParamsSectionTitle string `yaml:"paramsSectionTitle"`
	} `yaml:"regexp"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{
		Readme: "README.md",
		Values: "parameters.yaml",
	}
	cfg.Regexp.ParamsSectionTitle = "Parameters"
	cfg.Log.Level = "info"
	cfg.Log.Format = "console"
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config on top of the defaults
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	if readme := os.Getenv("READMEGEN_README"); readme != "" {
		cfg.Readme = readme
	}
	if values := os.Getenv("READMEGEN_VALUES"); values != "" {
		cfg.Values = values
	}
	if title := os.Getenv("READMEGEN_SECTION_TITLE"); title != "" {
		cfg.Regexp.ParamsSectionTitle = title
	}
	if level := os.Getenv("READMEGEN_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("READMEGEN_LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}

	if cfg.Regexp.ParamsSectionTitle == "" {
		return nil, errors.New("regexp.paramsSectionTitle must not be empty")
	}

	return cfg, nil
}
