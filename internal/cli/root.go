package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/synheart/lifelog/internal/config"
	"github.com/synheart/lifelog/internal/logger"
)

var (
	configPath string
	v          = config.New()
	settings   *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lifelog",
	Short: "lifelog - live synthetic life event monitor",
	Long: `lifelog simulates a stream of personal life events (health, fitness,
sleep, nutrition and more) in a bounded in-memory log with running
aggregate stats, and lets you pause, clear, filter and search it live.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flags.String("log-level", "warn", "Log level: debug|info|warn|error")
	flags.String("log-format", "json", "Log format: json|text (text adds file:line)")
	flags.String("profile", "balanced", "Generation profile to use")
	flags.String("profile-dir", "", "Directory with additional profile YAML files")
	flags.String("format", "text", "Event output format: text|json|protobuf")
	flags.Int64("seed", 0, "Random seed for deterministic output (0 uses the wall clock)")
	bindFlag(v, "logging.level", flags.Lookup("log-level"))
	bindFlag(v, "logging.format", flags.Lookup("log-format"))
	bindFlag(v, "monitor.profile", flags.Lookup("profile"))
	bindFlag(v, "monitor.profile_dir", flags.Lookup("profile-dir"))
	bindFlag(v, "output.format", flags.Lookup("format"))
	bindFlag(v, "monitor.seed", flags.Lookup("seed"))

	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadSettings(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	settings = cfg
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Debug("Configuration loaded (profile %s, output %s)", cfg.Monitor.Profile, cfg.Output.Format)
	return nil
}
