// Package commands provides the newsdesk CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/finwire/newsdesk/internal/config"
	"github.com/spf13/cobra"
)

var (
	configFlag  string
	envFileFlag []string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "newsdesk",
	Short: "Financial news dashboard with entity, sentiment and summary enrichment",
	Long: `newsdesk fetches top business headlines, tags each article with named
entities and a sentiment label, summarizes it with a language model and
offers a chat assistant alongside the feed.

Examples:
  newsdesk serve                       Start the web dashboard
  newsdesk digest -n 5 -k bank         Print an enriched digest to the terminal
  newsdesk chat                        Talk to the assistant in the terminal`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv(envFileFlag...)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Fprintf(cmd.OutOrStdout(), "newsdesk %s (built %s)\n", Version, BuildTime)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to YAML config file (default "+config.DefaultConfigPath+")")
	rootCmd.PersistentFlags().StringSliceVar(&envFileFlag, "env-file", nil, "Extra .env files to load (default .env)")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(chatCmd)
}

func loadConfig() (*config.AppConfig, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
