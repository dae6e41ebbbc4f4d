package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/aphreditto/diary/internal/navigator"
	"github.com/aphreditto/diary/internal/storage"
	"github.com/aphreditto/diary/internal/ui"
	"github.com/spf13/cobra"
)

var (
	showSelect   bool
	showTextOnly bool
)

var showCmd = &cobra.Command{
	Use:   "show <index>",
	Short: "Show a diary entry",
	Long: `Display the full text and metadata of an entry. Indices are positions in
date order, as printed by list.

With --select the entry also becomes the saved selection, so the browser
opens on its page next time.`,
	Example: `  diary show 12
  diary show 12 --select
  diary show 12 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid entry index %q", args[0])
		}
		return showRun(cmd.Context(), cmd.OutOrStdout(), index, showSelect, showTextOnly)
	},
}

func showRun(ctx context.Context, w io.Writer, index int, sel, textOnly bool) error {
	sess, err := openSession(ctx, sel)
	if err != nil {
		return err
	}
	defer sess.Close()

	e, ok := sess.nav.Entry(index)
	if !ok {
		return fmt.Errorf("%w: entry %d", storage.ErrNotFound, index)
	}
	if sel {
		dir := navigator.Forward
		if cur := sess.nav.State().Selection.Index; cur != navigator.None && index < cur {
			dir = navigator.Backward
		}
		sess.nav.SetSelected(index, dir)
	}

	switch {
	case jsonOutput:
		return ui.FormatJSON(w, e)
	case textOnly:
		for _, p := range e.Paragraphs {
			fmt.Fprintln(w, p)
			fmt.Fprintln(w)
		}
		return nil
	}

	theme := ui.ResolveTheme(appConfig.Theme)
	var buf bytes.Buffer
	ui.FormatEntryFull(&buf, e, appConfig.MaxWidth, theme.MarkdownStyle)
	return ui.OutputOrPage(w, buf.String(), false, theme, appConfig.MaxWidth)
}

func init() {
	showCmd.Flags().BoolVar(&showSelect, "select", false, "remember the entry as the selection")
	showCmd.Flags().BoolVar(&showTextOnly, "text-only", false, "print just the paragraphs")
	rootCmd.AddCommand(showCmd)
}
