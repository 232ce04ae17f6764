package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/papapumpkin/daylog/internal/config"
)

// errProblemsFound is returned by --strict runs that found diagnostics.
var errProblemsFound = errors.New("problems found")

// app holds what every command needs once flags and config are resolved.
type app struct {
	cfg    config.Config
	logger *zap.Logger
}

var current = &app{logger: zap.NewNop()}

var rootCmd = &cobra.Command{
	Use:   "daylog",
	Short: "Validate and report on daily activity logs",
	Long: `daylog checks plain-text daily activity logs block by block, imports them
into a local database, and rolls logged time up into category reports.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = current.logger.Sync()
	},
}

// Execute runs the root command and exits 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .daylog.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.String("taxonomy", "", "taxonomy document (json, toml or yaml)")
	pf.String("db", "", "SQLite database path")
	pf.String("ext", "", "log file extension")
	pf.String("events", "", "append JSONL run events to this file")

	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("taxonomy_path", pf.Lookup("taxonomy"))
	_ = viper.BindPFlag("db_path", pf.Lookup("db"))
	_ = viper.BindPFlag("extension", pf.Lookup("ext"))
	_ = viper.BindPFlag("events_path", pf.Lookup("events"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".daylog")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("DAYLOG")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

func setupApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	current = &app{cfg: cfg, logger: logger}
	return nil
}
