package cmd

import (
	"context"
	"io"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/filter"
	"github.com/aphreditto/diary/internal/ui"
	"github.com/spf13/cobra"
)

type topicsOptions struct {
	toggle    []string
	only      []string
	detail    *float64
	sensitive *bool
	reset     bool
}

var (
	topicsToggle    []string
	topicsOnly      []string
	topicsDetail    float64
	topicsSensitive bool
	topicsReset     bool
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Show or change the saved filter",
	Long: `Print the topic catalogue with the number of entries per topic and whether
it is active. Flags change the saved filter; at least one topic must stay
active and the detail threshold must lie between 1 and 100.`,
	Example: `  diary topics
  diary topics --toggle srs --toggle ffs
  diary topics --only hrt --detail 40
  diary topics --nsfw
  diary topics --reset`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := topicsOptions{
			toggle: topicsToggle,
			only:   topicsOnly,
			reset:  topicsReset,
		}
		if cmd.Flags().Changed("detail") {
			opts.detail = &topicsDetail
		}
		if cmd.Flags().Changed("nsfw") {
			opts.sensitive = &topicsSensitive
		}
		return topicsRun(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

func topicsRun(ctx context.Context, w io.Writer, opts topicsOptions) error {
	sess, err := openSession(ctx, true)
	if err != nil {
		return err
	}
	defer sess.Close()

	if opts.reset {
		def := filter.Default()
		if _, err := sess.nav.SetFilter(filter.Patch{
			ActiveTopics:     def.ActiveTopics,
			MaxDetail:        &def.MaxDetail,
			IncludeSensitive: &def.IncludeSensitive,
		}); err != nil {
			return err
		}
	}

	p := filter.Patch{
		ActiveTopics:     opts.only,
		MaxDetail:        opts.detail,
		IncludeSensitive: opts.sensitive,
	}
	if p.ActiveTopics != nil || p.MaxDetail != nil || p.IncludeSensitive != nil {
		if _, err := sess.nav.SetFilter(p); err != nil {
			return err
		}
	}
	for _, key := range opts.toggle {
		if _, err := sess.nav.SetFilter(filter.Patch{ToggleTopic: key}); err != nil {
			return err
		}
	}

	d := sess.nav.Display()
	if jsonOutput {
		return ui.FormatJSON(w, struct {
			Catalogue []entry.TopicInfo `json:"catalogue"`
			Filter    filter.Config     `json:"filter"`
		}{entry.Topics, d.Filter})
	}
	ui.FormatTopics(w, d.Filter, sess.nav.Entries())
	return nil
}

func init() {
	topicsCmd.Flags().StringSliceVar(&topicsToggle, "toggle", nil, "flip a topic on or off (repeatable)")
	topicsCmd.Flags().StringSliceVar(&topicsOnly, "only", nil, "replace the active topics")
	topicsCmd.Flags().Float64Var(&topicsDetail, "detail", filter.MaxDetail, "detail threshold (1-100)")
	topicsCmd.Flags().BoolVar(&topicsSensitive, "nsfw", false, "include entries marked nsfw")
	topicsCmd.Flags().BoolVar(&topicsReset, "reset", false, "restore the default filter")
	rootCmd.AddCommand(topicsCmd)
}
