// cmd/main.go - Program entry
package main

import (
	"errors"
	"fmt"
	"os"

	"member-organizer/internal/config"
	"member-organizer/internal/eslint"
	"member-organizer/internal/metrics"
	"member-organizer/internal/scanner"
	"member-organizer/internal/service"
	"member-organizer/internal/utils"
	"member-organizer/pkg/logger"
	"member-organizer/pkg/organizer"

	"github.com/spf13/cobra"
)

var (
	// set by the linker during build
	version string
)

var (
	// Global flags
	configPath        string
	logLevel          string
	logDir            string
	workers           int
	addPublicModifier bool
)

// application holds what the subcommands share, built once per invocation.
type application struct {
	cfg      config.Config
	logger   logger.Logger
	policy   *eslint.Provider
	scanner  *scanner.FileScanner
	metrics  *metrics.Metrics
	organize service.OrganizeService
}

var app *application

var rootCmd = &cobra.Command{
	Use:   "member-organizer",
	Short: "Reorder TypeScript class and interface members",
	Long: `member-organizer sorts the declarations of TypeScript files and the members
of their classes and interfaces following the @typescript-eslint/member-ordering
rule of the nearest ESLint configuration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApplication(cmd)
		if err != nil {
			return err
		}
		app = a
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFileName, "TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "write rotated log files to this directory instead of stderr")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "files organized concurrently")
	rootCmd.PersistentFlags().BoolVar(&addPublicModifier, "add-public-modifier", false, "insert public before members without an access modifier")

	rootCmd.AddCommand(organizeCmd)
	rootCmd.AddCommand(organizeAllCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetAppInfo().Version)
		return nil
	},
}

// loadConfig reads the configuration file and applies flag overrides. The
// default file name may be absent.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	optional := !cmd.Flags().Changed("config")
	cfg, err := config.Load(configPath, optional)
	if err != nil {
		return cfg, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logDir != "" {
		cfg.Log.Dir = logDir
	}
	if workers > 0 {
		cfg.Scan.Workers = workers
	}
	if cmd.Flags().Changed("add-public-modifier") {
		cfg.AddPublicModifierIfMissing = addPublicModifier
	}
	return cfg, nil
}

func newApplication(cmd *cobra.Command) (*application, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	// watch runs for long, give it log files like a daemon
	if cfg.Log.Dir == "" && cmd.Name() == watchCmd.Name() {
		if cfg.Log.Dir, err = initLogDir(); err != nil {
			return nil, err
		}
	}
	var log logger.Logger
	if cfg.Log.Dir != "" {
		log, err = logger.NewLogger(cfg.Log.Dir, cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("initialize logger: %w", err)
		}
	} else {
		log = logger.NewConsoleLogger(cfg.Log.Level)
	}

	provider := eslint.NewProvider(log, 0)
	policy := organizer.ChainPolicy{provider, organizer.StaticPolicy(cfg.MemberOrdering)}
	org := organizer.NewOrganizer(log, policy, organizer.Options{
		AddPublicModifierIfMissing: cfg.AddPublicModifierIfMissing,
	})
	fs := scanner.NewFileScanner(log, cfg.Scan)
	m := metrics.New()

	return &application{
		cfg:      cfg,
		logger:   log,
		policy:   provider,
		scanner:  fs,
		metrics:  m,
		organize: service.NewOrganizeService(org, fs, m, log, cfg.Scan.Workers),
	}, nil
}

// initLogDir creates the application root and logs directories.
func initLogDir() (string, error) {
	rootPath, err := utils.GetRootDir(config.GetAppInfo().AppName)
	if err != nil {
		return "", fmt.Errorf("failed to get root directory: %w", err)
	}
	logPath, err := utils.GetLogDir(rootPath)
	if err != nil {
		return "", fmt.Errorf("failed to get log directory: %w", err)
	}
	return logPath, nil
}

// errCheckFailed makes --check runs exit non-zero.
var errCheckFailed = errors.New("files are not organized")

func main() {
	if version != "" {
		info := config.GetAppInfo()
		info.Version = version
		config.SetAppInfo(info)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
