package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ning0612/apkrepack/internal/config"
	"github.com/Ning0612/apkrepack/internal/logger"
	"github.com/Ning0612/apkrepack/internal/service"
)

// Version is set at build time
var Version = "dev"

var (
	cfgFile   string
	logLevel  string
	logFormat string
	logPath   string
)

// Execute runs the CLI and returns the process exit code
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "apkrepack",
		Short:         "Rebuild, align and re-sign Android application packages",
		Long:          "apkrepack orchestrates apktool, zipalign, apksigner and d8 to rebuild\nand re-sign unpacked Android application packages.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logger.Config{
				Level:  logger.ParseLevel(logLevel),
				Format: logger.ParseFormat(logFormat),
				File: logger.FileConfig{
					Enabled:   logPath != "",
					Path:      logPath,
					MaxSizeMB: 10,
				},
			})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Shutdown()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: search standard locations)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text|json)")
	cmd.PersistentFlags().StringVar(&logPath, "log-file", "", "also write logs to this file")

	cmd.AddCommand(
		newPlanCmd(),
		newBuildCmd(),
		newAlignCmd(),
		newSignCmd(),
		newDexCmd(),
		newDecodeCmd(),
		newRepackCmd(),
	)

	return cmd
}

// loadConfig loads the configuration from --config or default paths
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// newService builds a RepackService from the loaded configuration,
// applying any command-line signing overrides
func newService(override func(*config.Config)) (*service.RepackService, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
	}
	return service.NewRepackService(cfg)
}
