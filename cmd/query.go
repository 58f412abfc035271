package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/itsmostafa/godoxy/internal/query"
	"github.com/spf13/cobra"
)

var queryFile string
var queryTimeout time.Duration

var queryCmd = &cobra.Command{
	Use:   "query [script]",
	Short: "Run a JavaScript snippet against the documentation tree",
	Long: `Run a JavaScript snippet against the loaded tree. The script sees:

  tree                 the whole tree as nested objects
  find(refid)          the data of one entity, or null
  children(refid)      summaries of an entity's children
  search(name, kind?)  summaries of entities whose name contains name
  print(...), console.log(...)

The value of the last expression is printed as JSON.`,
	Example: `  godoxy query -i xml 'search("Engine", "class").map(c => c.url)'`,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var code string
		switch {
		case queryFile != "":
			src, err := os.ReadFile(queryFile)
			if err != nil {
				return fmt.Errorf("failed to read script: %w", err)
			}
			code = string(src)
		case len(args) == 1:
			code = args[0]
		default:
			return fmt.Errorf("no script: pass it as an argument or with --file")
		}

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

		qcfg := query.DefaultConfig()
		qcfg.Timeout = queryTimeout
		res := query.NewRunner(d, qcfg).Execute(cmd.Context(), code)

		out := cmd.OutOrStdout()
		fmt.Fprint(out, res.Output)
		if res.Truncated {
			fmt.Fprintln(out, "... (output truncated)")
		}
		if res.Error != nil {
			return res.Error
		}
		if res.Value != "" {
			fmt.Fprintln(out, res.Value)
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryFile, "file", "f", "", "Read the script from a file")
	queryCmd.Flags().DurationVar(&queryTimeout, "timeout", 10*time.Second, "Maximum script run time")

	rootCmd.AddCommand(queryCmd)
}
