package cmd

import (
	"fmt"
	"os"

	"github.com/itsmostafa/godoxy/internal/config"
	"github.com/itsmostafa/godoxy/internal/version"
	"github.com/spf13/cobra"
)

var configPath string
var inputDir string
var logLevel string

var rootCmd = &cobra.Command{
	Use:   "godoxy",
	Short: "Turn Doxygen XML output into a documentation tree",
	Long: `godoxy loads the XML output of Doxygen (index.xml and one file per compound)
into a single ownership tree: every class, function or file appears exactly once,
under its namespace first, then its group, then its file or directory.

The tree can be rendered to Markdown pages, dumped as JSON, queried with
JavaScript or served to MCP clients.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("godoxy %s\n", version.String()))

	// Config file flag with env var fallback
	defaultConfig := os.Getenv(config.EnvConfig)
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfig, "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().StringVarP(&inputDir, "input", "i", "", "Doxygen XML output directory containing index.xml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
