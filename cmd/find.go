package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <refid>",
	Short: "Print the documentation data of one entity",
	Args:  cobra.ExactArgs(1),
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

		node, err := d.Find(args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(node.Data())
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}
