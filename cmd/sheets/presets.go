package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/sheets/internal/config"
	"github.com/jmylchreest/sheets/internal/output"
	"github.com/jmylchreest/sheets/internal/sheet"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the configured sheet presets",
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tOPTIONS\tCOVER\tNEXT")

	for _, p := range getConfig().Presets {
		opts, err := p.Options()
		if err != nil {
			return fmt.Errorf("preset %s: %w", p.Name, err)
		}
		cover, err := p.CoverOptions()
		if err != nil {
			return fmt.Errorf("preset %s: %w", p.Name, err)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			p.Name,
			output.FormatOptions(sheet.DefaultOptions().Merge(opts)),
			output.FormatPartial(cover),
			dash(p.Next),
		)
	}

	return w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func defaultPlainTemplate() string {
	return config.DefaultPlainTmpl
}
