package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/sheets/internal/output"
	"github.com/jmylchreest/sheets/internal/script"
	"github.com/jmylchreest/sheets/internal/sheet"
)

var replayOpts struct {
	format   string
	template string
	trace    bool
	showTime bool
	showID   bool
}

var replayCmd = &cobra.Command{
	Use:   "replay [file]",
	Short: "Apply a push/pop script and print the resulting stack",
	Long: `Read a script of push and pop steps, apply it to an empty stack and print
the stack, bottom sheet first. The top sheet is marked with "*".

The script is YAML or JSON. Reads stdin when no file (or "-") is given.

Example script:
  - op: push
    content: A
    options: {placement: right, size: 50}
  - op: push
    content: B
    options: {placement: bottom, size: 30}
    cover: {size: 20}
  - op: pop

Examples:
  # Final stack as plain text
  sheets replay steps.yaml

  # Stack after every step
  sheets replay --trace steps.yaml

  # JSON for further processing
  cat steps.json | sheets replay --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	replayCmd.Flags().StringVar(&replayOpts.template, "template", "",
		"Custom Go template for plain output (default: config templates.plain when set)")
	replayCmd.Flags().BoolVar(&replayOpts.trace, "trace", false,
		"Print the stack after every step")
	replayCmd.Flags().BoolVar(&replayOpts.showTime, "time", false,
		"Show when each sheet was opened (plain format)")
	replayCmd.Flags().BoolVar(&replayOpts.showID, "ids", false,
		"Show sheet IDs (plain format)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(replayOpts.format)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		in = f
		name = args[0]
	}

	steps, err := script.Parse(in)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = replayOpts.template
	if opts.Template == "" && format == output.FormatPlain {
		opts.Template = customPlainTemplate()
	}
	opts.ShowTime = replayOpts.showTime
	opts.ShowID = replayOpts.showID

	formatter, err := output.NewFormatter(format, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	stack := sheet.NewStack(logger)

	var writeErr error
	var after func(int, script.Step)
	if replayOpts.trace {
		after = func(i int, step script.Step) {
			if writeErr != nil {
				return
			}
			if format == output.FormatPlain {
				fmt.Fprintf(out, "# step %d: %s\n", i+1, step.Op)
			}
			writeErr = formatter.Format(out, stack.Layers())
		}
	}

	if err := script.Apply(stack, steps, after); err != nil {
		return err
	}
	if writeErr != nil {
		return writeErr
	}
	if replayOpts.trace {
		return nil
	}

	logger.Debug("replayed script", "source", name, "steps", len(steps), "depth", stack.Len())
	return formatter.Format(out, stack.Layers())
}

// customPlainTemplate returns the plain template from the config when it
// differs from the built-in one.
func customPlainTemplate() string {
	c := getConfig()
	if c == nil {
		return ""
	}
	tmpl := c.GetTemplate("plain")
	if tmpl == defaultPlainTemplate() {
		return ""
	}
	return tmpl
}
