package cmd

import (
	"bytes"
	"context"
	"io"

	"github.com/aphreditto/diary/internal/ui"
	"github.com/aphreditto/diary/internal/window"
	"github.com/spf13/cobra"
)

type listOptions struct {
	scale string
	page  int
	yaml  bool
}

var listOpts listOptions

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the current page of entries",
	Long: `Print the entries on one page of the current window. The filter and scale
come from the saved preferences; --scale and --page override them for this
run only.`,
	Example: `  diary list
  diary list --scale month --page 3
  diary list --scale page --json
  diary list --yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRun(cmd.Context(), cmd.OutOrStdout(), listOpts)
	},
}

func listRun(ctx context.Context, w io.Writer, opts listOptions) error {
	sess, err := openSession(ctx, false)
	if err != nil {
		return err
	}
	defer sess.Close()

	d := sess.nav.Display()
	if opts.scale != "" {
		scale, err := window.ParseScale(opts.scale)
		if err != nil {
			return err
		}
		d = sess.nav.SetScale(scale)
	}
	if opts.page > 0 {
		d = sess.nav.SetPage(opts.page)
	}

	switch {
	case jsonOutput:
		return ui.FormatJSON(w, ui.ToPageSummary(d))
	case opts.yaml:
		return ui.FormatYAML(w, ui.ToPageSummary(d))
	}

	var buf bytes.Buffer
	ui.FormatPage(&buf, d)
	return ui.OutputOrPage(w, buf.String(), false, ui.ResolveTheme(appConfig.Theme), appConfig.MaxWidth)
}

func init() {
	listCmd.Flags().StringVar(&listOpts.scale, "scale", "", "window scale (week|month|page)")
	listCmd.Flags().IntVar(&listOpts.page, "page", 0, "page number within the scale")
	listCmd.Flags().BoolVar(&listOpts.yaml, "yaml", false, "output in YAML format")
	rootCmd.AddCommand(listCmd)
}
