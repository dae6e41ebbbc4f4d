package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/aphreditto/diary/internal/navigator"
	"github.com/aphreditto/diary/internal/ui"
	"github.com/spf13/cobra"
)

// statusData holds the template data for status formatting.
type statusData struct {
	Source    string   `json:"source"`
	Entries   int      `json:"entries"`
	Visible   int      `json:"visible"`
	Scale     string   `json:"scale"`
	Page      int      `json:"page"`
	MaxPages  int      `json:"max_pages"`
	Title     string   `json:"title"`
	Selected  int      `json:"selected"`
	Topics    []string `json:"topics"`
	Detail    float64  `json:"detail"`
	Sensitive bool     `json:"nsfw"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarise the saved browsing state",
	Long: `Print a one-line summary of where the browser will open: the scale, the
page, the selected entry and the active filter.

Use --env to output shell environment variable assignments.
Use --format with a Go template for custom output.`,
	Example: `  diary status
  diary status --env
  diary status --format "{{.Scale}} {{.Page}}/{{.MaxPages}}"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		envFlag, _ := cmd.Flags().GetBool("env")
		formatFlag, _ := cmd.Flags().GetString("format")

		data, err := buildStatusData(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		switch {
		case jsonOutput:
			return ui.FormatJSON(w, data)
		case envFlag:
			return outputEnv(w, data)
		case formatFlag != "":
			return outputTemplate(w, data, formatFlag)
		}
		return outputDefault(w, data)
	},
}

func buildStatusData(ctx context.Context) (statusData, error) {
	sess, err := openSession(ctx, false)
	if err != nil {
		return statusData{}, err
	}
	defer sess.Close()

	d := sess.nav.Display()
	return statusData{
		Source:    appConfig.Source,
		Entries:   len(sess.nav.Entries()),
		Visible:   len(sess.nav.Filtered()),
		Scale:     d.Window.Scale.String(),
		Page:      d.Window.PageNumber,
		MaxPages:  d.Window.MaxPages,
		Title:     ui.WindowTitle(d.Window),
		Selected:  d.Selection.Index,
		Topics:    d.Filter.ActiveTopics,
		Detail:    d.Filter.MaxDetail,
		Sensitive: d.Filter.IncludeSensitive,
	}, nil
}

func outputEnv(w io.Writer, data statusData) error {
	fmt.Fprintf(w, "export DIARY_SCALE=%q\n", data.Scale)
	fmt.Fprintf(w, "export DIARY_PAGE=%q\n", fmt.Sprint(data.Page))
	fmt.Fprintf(w, "export DIARY_MAX_PAGES=%q\n", fmt.Sprint(data.MaxPages))
	if data.Selected != navigator.None {
		fmt.Fprintf(w, "export DIARY_SELECTED=%q\n", fmt.Sprint(data.Selected))
	}
	fmt.Fprintf(w, "export DIARY_TOPICS=%q\n", strings.Join(data.Topics, ","))
	return nil
}

func outputTemplate(w io.Writer, data statusData, format string) error {
	tmpl, err := template.New("status").Parse(format)
	if err != nil {
		return fmt.Errorf("invalid format template: %w", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing format template: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

func outputDefault(w io.Writer, data statusData) error {
	parts := []string{
		data.Title,
		fmt.Sprintf("%d/%d entries", data.Visible, data.Entries),
	}
	if data.Selected != navigator.None {
		parts = append(parts, fmt.Sprintf("entry %d selected", data.Selected))
	}
	parts = append(parts, fmt.Sprintf("detail ≤ %g", data.Detail))
	if data.Sensitive {
		parts = append(parts, "nsfw shown")
	}
	fmt.Fprintln(w, strings.Join(parts, " · "))
	return nil
}

func init() {
	statusCmd.Flags().Bool("env", false, "output shell environment variable assignments")
	statusCmd.Flags().String("format", "", "Go template format string")
	rootCmd.AddCommand(statusCmd)
}
