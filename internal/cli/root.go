// Package cli implements the fastlyctl command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/integralist/fastly-client-go/fastly"
	"github.com/integralist/fastly-client-go/internal/cli/output"
)

var (
	// Global flags
	cfgFile      string
	outputFormat string
	apiEndpoint  string
	apiKey       string
	verbose      bool

	// Shared state set during PersistentPreRunE
	cfg       *Config
	client    *fastly.Client
	formatter output.Formatter

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// rootCmd is the base command for fastlyctl.
var rootCmd = &cobra.Command{
	Use:   "fastlyctl",
	Short: "Manage Fastly service configuration and cache purging",
	Long: `fastlyctl drives the Fastly control-plane API: inspect services and
their configuration versions, upload VCL through the clone-edit-activate
workflow, and purge cached content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = DefaultConfigPath()
		}
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// Flags override the config file.
		if apiKey != "" {
			cfg.APIKey = apiKey
		}
		if apiEndpoint != "" {
			cfg.APIEndpoint = apiEndpoint
		}
		if outputFormat != "" {
			cfg.OutputFormat = outputFormat
		}

		logger := zerolog.Nop()
		if verbose {
			logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				With().Timestamp().Logger().
				Level(zerolog.DebugLevel)
		}

		opts := []fastly.Option{fastly.WithLogger(logger), fastly.WithUserAgent("fastlyctl")}
		if cfg.APIEndpoint != "" {
			opts = append(opts, fastly.WithEndpoint(cfg.APIEndpoint))
		}
		client, err = fastly.NewClient(cfg.APIKey, opts...)
		if err != nil {
			return err
		}

		formatter = output.NewFormatter(cfg.OutputFormat)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// RootCmd returns the root cobra.Command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.fastlyctl.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml (default \"table\")")
	rootCmd.PersistentFlags().StringVar(&apiEndpoint, "endpoint", "", "Fastly API endpoint")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Fastly API key")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace API requests to stderr")
}

// login upgrades the client to a full session when the config carries
// credentials. Operations that only need the API key skip this.
func login(cmd *cobra.Command) error {
	if cfg.User == "" || cfg.Password == "" {
		return nil
	}
	if _, err := client.Login(cmd.Context(), cfg.User, cfg.Password); err != nil {
		return fmt.Errorf("logging in as %s: %w", cfg.User, err)
	}
	return nil
}
