package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Ning0612/apkrepack/internal/domain"
)

// DefaultConfigPaths returns the default paths to search for config files
func DefaultConfigPaths() []string {
	paths := []string{
		".",
		"./configs",
	}

	// Add user config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "apkrepack"))
	}

	// Add home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "apkrepack"))
		paths = append(paths, filepath.Join(homeDir, ".apkrepack"))
	}

	return paths
}

// setDefaults registers built-in defaults so a partial file still
// yields a complete configuration
func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("tools.apktool", def.Tools.Apktool)
	v.SetDefault("tools.java", def.Tools.Java)
	v.SetDefault("tools.apksigner", def.Tools.Apksigner)
	v.SetDefault("tools.jarsigner", def.Tools.Jarsigner)
	v.SetDefault("tools.zipalign", def.Tools.Zipalign)
	v.SetDefault("tools.sevenzip", def.Tools.SevenZip)
	v.SetDefault("tools.d8", def.Tools.D8)
	v.SetDefault("signing.scheme", string(def.Signing.Scheme))
	v.SetDefault("packaging.compress_level", def.Packaging.CompressLevel)
	v.SetDefault("packaging.align", def.Packaging.Align)
	v.SetDefault("packaging.temp_prefix", def.Packaging.TempPrefix)
}

// Load reads and parses a configuration file
// If path is empty, searches default locations for config.yaml;
// a missing file in that case falls back to the built-in defaults
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		// Use specific file
		v.SetConfigFile(path)
	} else {
		// Search default paths
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range DefaultConfigPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path == "" {
				return Default(), nil
			}
			return nil, domain.ErrConfigNotFound
		}
		if path != "" {
			if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
				return nil, domain.ErrConfigNotFound
			}
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	// Expand user paths for file-valued settings
	cfg.Tools.Apktool = ExpandPath(cfg.Tools.Apktool)
	cfg.Tools.AndroidJar = expandIfSet(cfg.Tools.AndroidJar)
	cfg.Signing.Keystore.Path = expandIfSet(cfg.Signing.Keystore.Path)

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromString parses configuration from a YAML string
func LoadFromString(yamlContent string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")

	if err := v.ReadConfig(strings.NewReader(yamlContent)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func expandIfSet(path string) string {
	if path == "" {
		return ""
	}
	return ExpandPath(path)
}
