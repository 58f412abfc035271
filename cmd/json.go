package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var jsonRefid string
var jsonCompact bool

var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Print the documentation tree as JSON",
	Long: `Load the Doxygen XML output and print the resolved tree as nested JSON. With
--refid only the subtree below that entity is printed.`,
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

		node := d.Root()
		if jsonRefid != "" {
			if node, err = d.Find(jsonRefid); err != nil {
				return err
			}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		if !jsonCompact {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(node.Tree())
	},
}

func init() {
	jsonCmd.Flags().StringVar(&jsonRefid, "refid", "", "Only print the subtree of this refid")
	jsonCmd.Flags().BoolVar(&jsonCompact, "compact", false, "Print without indentation")

	rootCmd.AddCommand(jsonCmd)
}
