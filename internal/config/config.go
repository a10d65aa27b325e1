package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ning0612/apkrepack/internal/domain"
)

// Config represents the complete configuration for apkrepack
//
// It is always passed explicitly into the operations that need it;
// nothing reads configuration from ambient global state.
type Config struct {
	// Tools holds paths to the external tool binaries
	Tools ToolsConfig `mapstructure:"tools"`

	// Signing holds keystore and scheme selection
	Signing SigningConfig `mapstructure:"signing"`

	// Packaging holds archive and alignment options
	Packaging PackagingConfig `mapstructure:"packaging"`
}

// ToolsConfig 外部工具路徑
type ToolsConfig struct {
	// Apktool path; a .jar path is run through Java
	Apktool string `mapstructure:"apktool"`

	// Java binary used to run .jar tools
	Java string `mapstructure:"java"`

	// Apksigner path (Android SDK build-tools)
	Apksigner string `mapstructure:"apksigner"`

	// Jarsigner path (JDK), the v1-only fallback signer
	Jarsigner string `mapstructure:"jarsigner"`

	// Zipalign path (Android SDK build-tools)
	Zipalign string `mapstructure:"zipalign"`

	// SevenZip path, the external fallback archiver
	SevenZip string `mapstructure:"sevenzip"`

	// D8 path for bytecode conversion
	D8 string `mapstructure:"d8"`

	// AndroidJar is the boot classpath for d8
	AndroidJar string `mapstructure:"android_jar"`
}

// SigningConfig holds signing defaults
type SigningConfig struct {
	// Keystore reference used when a command does not override it
	Keystore domain.Keystore `mapstructure:"keystore"`

	// Scheme selects which signature versions to apply
	Scheme domain.SignScheme `mapstructure:"scheme"`
}

// PackagingConfig holds archive-assembly options
type PackagingConfig struct {
	// CompressLevel is the deflate level (0-9) for the external archiver
	CompressLevel int `mapstructure:"compress_level"`

	// Align enables the zipalign step during repack
	Align bool `mapstructure:"align"`

	// TempPrefix is the prefix for working directories
	TempPrefix string `mapstructure:"temp_prefix"`
}

// Default returns the built-in configuration
// Tool names without a path are resolved through PATH at invocation time
func Default() *Config {
	return &Config{
		Tools: ToolsConfig{
			Apktool:   "apktool",
			Java:      "java",
			Apksigner: "apksigner",
			Jarsigner: "jarsigner",
			Zipalign:  "zipalign",
			SevenZip:  "7z",
			D8:        "d8",
		},
		Signing: SigningConfig{
			Scheme: domain.SchemeV2Only,
		},
		Packaging: PackagingConfig{
			CompressLevel: 9,
			Align:         true,
			TempPrefix:    "apk_repack_",
		},
	}
}

// Validate checks if the configuration is complete and consistent
func (c *Config) Validate() error {
	if c.Signing.Scheme != "" && !c.Signing.Scheme.IsValid() {
		return fmt.Errorf("%w: unknown signing scheme: %s", domain.ErrInvalidScheme, c.Signing.Scheme)
	}
	if c.Packaging.CompressLevel < 0 || c.Packaging.CompressLevel > 9 {
		return fmt.Errorf("%w: compress_level must be 0-9, got %d",
			domain.ErrConfigInvalid, c.Packaging.CompressLevel)
	}
	if c.Tools.Java == "" {
		return fmt.Errorf("%w: tools.java cannot be empty", domain.ErrConfigInvalid)
	}
	if c.Packaging.TempPrefix == "" {
		return fmt.Errorf("%w: packaging.temp_prefix cannot be empty", domain.ErrConfigInvalid)
	}
	return nil
}

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	// Expand ~ to home directory
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			if len(path) > 1 && (path[1] == '/' || path[1] == filepath.Separator) {
				path = filepath.Join(home, path[2:])
			} else if len(path) == 1 {
				path = home
			}
		}
	}
	// Expand environment variables
	path = os.ExpandEnv(path)
	return filepath.Clean(path)
}
