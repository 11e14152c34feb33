package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/lifetable/pkg/logging"
)

var (
	configFile string

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lifetable",
	Short: "Multi-source life-expectancy integration pipeline",
	Long: `Lifetable integrates life-expectancy observations published by six
independent organizations into one canonical, deduplicated dataset keyed
by (country, year).

Sources identify countries by free-text name, by ISO3 code, or not at
all; lifetable normalizes names, resolves them against the reference
source's canonical mapping, merges everything with a full outer join,
and quantifies where the sources disagree.`,
	PersistentPreRunE: setupLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = version

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.lifetable.yaml)")
	rootCmd.PersistentFlags().String("raw-dir", "data/raw", "directory holding the fetched source files")
	rootCmd.PersistentFlags().String("corrections", "", "external name-correction artifact (default: embedded table)")
	rootCmd.PersistentFlags().String("overrides", "", "code-keyed display-name override artifact")
	rootCmd.PersistentFlags().Bool("parallel", false, "clean independent sources concurrently")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "errors only")

	for _, flag := range []string{"raw-dir", "corrections", "overrides", "parallel", "verbose", "quiet"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("Failed to bind %s flag: %v", flag, err))
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lifetable")
	}

	// Load .env before Viper env binding
	_ = godotenv.Load()

	viper.SetEnvPrefix("LIFETABLE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Missing config file is fine; a malformed one is not
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && configFile != "" {
			cobra.CheckErr(err)
		}
	}
}

// setupLogging adjusts the global log level from the verbosity flags.
func setupLogging(cmd *cobra.Command, args []string) error {
	switch {
	case viper.GetBool("quiet"):
		logging.SetLevel(zerolog.ErrorLevel)
	case viper.GetBool("verbose"):
		logging.SetLevel(zerolog.DebugLevel)
	}
	return nil
}
