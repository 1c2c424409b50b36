// Package config loads the project configuration that drives generation.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/apiforge/apiforge/internal/model"
)

// AppFs is the filesystem the config layer reads through. Tests swap in an
// in-memory fs.
var AppFs = afero.NewOsFs()

// Defaults applied when a project config omits values the generators need.
const (
	DefaultOutputDir = "./generated"
	DefaultVersion   = "0.1.0"
)

// LoadTool loads tool-level settings (paths, strict mode) from the viper
// stack: config file, then APIFORGE_-prefixed environment, then defaults.
func LoadTool() (*ToolConfig, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".apiforge")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "apiforge"))

	viper.SetEnvPrefix("APIFORGE")
	viper.AutomaticEnv()

	viper.SetDefault("model_path", "datamodel.json")
	viper.SetDefault("config_path", "apiforge.yaml")
	viper.SetDefault("output_path", DefaultOutputDir)
	viper.SetDefault("strict", false)

	// Config file is optional.
	_ = viper.ReadInConfig()

	if exists, _ := afero.Exists(AppFs, ".env"); exists {
		_ = godotenv.Load()
	}
	if exists, _ := afero.Exists(AppFs, ".env.local"); exists {
		_ = godotenv.Overload(".env.local")
	}

	return &ToolConfig{
		ModelPath:  viper.GetString("model_path"),
		ConfigPath: viper.GetString("config_path"),
		OutputPath: viper.GetString("output_path"),
		Strict:     viper.GetBool("strict"),
	}, nil
}

// ToolConfig holds the CLI's own settings, distinct from the ProjectConfig
// that describes the generated project.
type ToolConfig struct {
	ModelPath  string
	ConfigPath string
	OutputPath string
	Strict     bool
}

// LoadProject reads a ProjectConfig document (JSON or YAML by extension)
// and applies defaults for anything the generators require.
func LoadProject(path string) (*model.ProjectConfig, error) {
	raw, err := afero.ReadFile(AppFs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config %s: %w", path, err)
	}

	format, err := model.FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	var cfg model.ProjectConfig
	switch format {
	case model.FormatJSON:
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse project config %s: %w", path, err)
		}
	case model.FormatYAML:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse project config %s: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// ApplyDefaults fills the gaps of a partially specified project config.
func ApplyDefaults(cfg *model.ProjectConfig) {
	if cfg.Project.Name == "" {
		cfg.Project.Name = "generated-api"
	}
	if cfg.Project.Version == "" {
		cfg.Project.Version = DefaultVersion
	}
	if cfg.Database.Type == "" {
		cfg.Database.Type = model.PostgreSQL
	}
	if cfg.Generation.OutputDir == "" {
		cfg.Generation.OutputDir = DefaultOutputDir
	}
}

// DefaultProject returns the config used when no project config file is
// present: PostgreSQL, docs generation on, everything else off.
func DefaultProject(name string) *model.ProjectConfig {
	cfg := &model.ProjectConfig{
		Project: model.ProjectInfo{Name: name},
		Features: model.FeatureToggles{
			Swagger:  true,
			AsyncAPI: true,
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
