package cmd

import (
	"github.com/itsmostafa/godoxy/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the documentation tree over MCP on stdio",
	Long: `Load the Doxygen XML output and answer Model Context Protocol requests on
stdin/stdout. Tools: find, children and search. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		d, err := loadTree(cmd.Context(), cfg, log, nil)
		if err != nil {
			return err
		}
		return server.New(d, d.Stats(), log).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
