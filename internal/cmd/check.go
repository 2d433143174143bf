package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/doccheck/internal/checker"
	"github.com/harrison/doccheck/internal/config"
	"github.com/harrison/doccheck/internal/display"
	"github.com/harrison/doccheck/internal/executor"
	"github.com/harrison/doccheck/internal/fileutil"
	"github.com/harrison/doccheck/internal/logger"
	"github.com/harrison/doccheck/internal/parser"
	"github.com/harrison/doccheck/internal/report"
)

const defaultConfigHint = config.DefaultConfigFile

// scanRoot is the documentation tree: always the working directory
const scanRoot = "."

// runCheck implements the root command: scan, check, report
func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	log.LogDebug(fmt.Sprintf("using image %s via %s", cfg.Image, cfg.Launcher))

	chk := checker.NewContainerChecker(cfg.Image)
	chk.Launcher = cfg.Launcher
	chk.MountPath = cfg.MountPath
	chk.Timeout = cfg.Timeout
	chk.Logger = log

	reporter := display.NewReporter(cmd.OutOrStdout(), cmd.ErrOrStderr(), display.Options{
		Verbose: cfg.Verbose,
		Color:   cfg.Color,
	})

	orchestrator := executor.NewOrchestrator(chk, reporter, log)
	summary, err := orchestrator.Scan(cmd.Context(), scanRoot, fileutil.WalkOptions{
		Extensions:  cfg.Extensions,
		ExcludeDirs: cfg.ExcludeDirs,
	})
	if err != nil {
		return err
	}

	if cfg.Report != "" {
		if err := report.Write(cmd.Context(), cfg.Report, report.New(summary, cfg.Image)); err != nil {
			return err
		}
		log.LogInfo(fmt.Sprintf("wrote report to %s", cfg.Report))
	}

	if summary.ExitCode() != 0 {
		return executor.ErrScriptsFailed
	}
	return nil
}

// loadConfig resolves configuration with precedence flag > environment > file > default
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		// An explicit path must exist
		if _, statErr := os.Stat(configPath); statErr != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, statErr)
		}
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfig(config.DefaultConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)

	var image, launcher, color, logLevel, reportPath *string
	var verbose *bool
	if cmd.Flags().Changed("image") {
		v, _ := cmd.Flags().GetString("image")
		image = &v
	}
	if cmd.Flags().Changed("launcher") {
		v, _ := cmd.Flags().GetString("launcher")
		launcher = &v
	}
	if cmd.Flags().Changed("color") {
		v, _ := cmd.Flags().GetString("color")
		color = &v
	}
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevel = &v
	}
	if cmd.Flags().Changed("report") {
		v, _ := cmd.Flags().GetString("report")
		reportPath = &v
	}
	if cmd.Flags().Changed("verbose") {
		v, _ := cmd.Flags().GetBool("verbose")
		verbose = &v
	}
	cfg.MergeWithFlags(image, launcher, color, logLevel, reportPath, verbose)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	for _, ext := range cfg.Extensions {
		if parser.DetectFormat("file"+normalizeExt(ext)) == parser.FormatUnknown {
			return nil, fmt.Errorf("invalid configuration: no extractor for extension %q", ext)
		}
	}

	return cfg, nil
}

func normalizeExt(ext string) string {
	if len(ext) > 0 && ext[0] != '.' {
		return "." + ext
	}
	return ext
}
