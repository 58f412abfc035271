package cmd

import (
	"github.com/itsmostafa/godoxy/internal/console"
	"github.com/itsmostafa/godoxy/internal/generate"
	"github.com/spf13/cobra"
)

var buildOutput string
var buildTemplates string
var buildQuiet bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Load the Doxygen XML and render documentation pages",
	Long: `Load the Doxygen XML output, resolve the ownership tree and render one page per
namespace, class, group, file and directory plus per-category index pages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if buildOutput != "" {
			cfg.OutputDir = buildOutput
		}
		if buildTemplates != "" {
			cfg.TemplatesDir = buildTemplates
		}
		if cfg.OutputDir == "" {
			cfg.OutputDir = "docs"
		}

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if buildQuiet {
			out = nil
		} else {
			console.FormatHeader(out, "build", cfg.InputDir, cfg.OutputDir)
		}

		d, err := loadTree(cmd.Context(), cfg, log, out)
		if err != nil {
			return err
		}

		g, err := generate.New(cfg, log)
		if err != nil {
			return err
		}
		res, err := g.Generate(cmd.Context(), d.Root())
		if err != nil {
			return err
		}
		if out != nil {
			console.FormatGenerateSummary(out, res.Pages, res.Indexes)
			if res.Skipped > 0 {
				console.FormatWarning(out, "some compounds had no matching template and were skipped")
			}
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output directory (default \"docs\")")
	buildCmd.Flags().StringVarP(&buildTemplates, "templates", "t", "", "Directory of *.tmpl files overriding the built-in templates")
	buildCmd.Flags().BoolVarP(&buildQuiet, "quiet", "q", false, "Do not print progress and summaries")

	rootCmd.AddCommand(buildCmd)
}
