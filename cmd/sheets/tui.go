package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/sheets/internal/tui"
)

var tuiOpts struct {
	theme   string
	noWatch bool
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive sheet browser",
	Long: `Launch the terminal user interface.

The screen lists the configured presets. Opening a preset pushes it as a
sheet; a sheet with a follow-up preset can open it on top of itself.

Key bindings:
  j/k, ↑/↓    Move in the list, or scroll the top sheet
  enter       Open the selected preset / the top sheet's follow-up
  esc         Close the top sheet (clicking outside it does the same)
  y / Y       Copy the stack as YAML / JSON
  t           Next theme
  ?           Show help
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringVar(&tuiOpts.theme, "theme", "",
		"Theme name (overrides config)")
	tuiCmd.Flags().BoolVar(&tuiOpts.noWatch, "no-watch", false,
		"Do not reload config and theme when they change on disk")
}

func runTUI(cmd *cobra.Command, args []string) error {
	c := getConfig()
	if tuiOpts.noWatch {
		c.TUI.Watch = false
	}

	return tui.Run(tui.RunOptions{
		Config:     c,
		ConfigPath: globalOpts.configPath,
		Theme:      tuiOpts.theme,
		Logger:     logger,
	})
}
