// Package commands provides the geminichat command line.
package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/config"
)

var (
	// Global flags
	modelFlag   string
	logFileFlag string
	verboseFlag bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "geminichat",
	Short: "Chat with Google Gemini from the terminal",
	Long: `geminichat is a terminal chat client for Google Gemini.

The API key is read from GEMINI_API_KEY (or VITE_GEMINI_API_KEY), after
loading a .env file from the working directory if one exists.

Examples:
  geminichat                            Start interactive chat
  geminichat -m gemini-2.5-pro          Chat with another model
  geminichat ask "What is Go?"          Send a single prompt
  cat prompt.md | geminichat ask        Read the prompt from stdin
  geminichat config set tui_theme nord  Change a setting`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Fprintf(deps.Stdout, "geminichat %s (built %s)\n", Version, BuildTime)
			return nil
		}
		return runChat(cmd)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "",
		"Model to use ("+strings.Join(config.AvailableModels(), ", ")+")")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Write diagnostics to this file")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Log request details")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(configCmd)
}
