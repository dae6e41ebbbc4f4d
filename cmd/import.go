package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/storage"
	"github.com/aphreditto/diary/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

var (
	importFrom     string
	importFromPath string
	importYes      bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy entries from another source into the configured one",
	Long: `Read every record from --from/--from-path and replace the records of the
configured source with them. The records are checked first; a single
malformed date aborts the import and nothing is written.`,
	Example: `  diary import --from json --from-path ~/Downloads/entries.json
  diary --source sqlite import --from markdown --from-path ~/.diary/entries --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm := func(prompt string) (bool, error) {
			if importYes {
				return true, nil
			}
			return ui.Confirm(prompt, ui.ResolveTheme(appConfig.Theme))
		}
		return importRun(cmd.Context(), cmd.OutOrStdout(), importFrom, importFromPath, confirm)
	},
}

// replaceRecords writes raws to the configured source, asking confirm first
// when the source already holds records.
func replaceRecords(ctx context.Context, raws []entry.Raw, confirm func(string) (bool, error)) (bool, error) {
	dst, err := openBackend(appConfig.Source, appConfig.ResolvedSourcePath())
	if err != nil {
		return false, err
	}
	defer dst.Close()

	existing, err := dst.Load(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return false, fmt.Errorf("reading %s source: %w", appConfig.Source, err)
	}
	if len(existing) > 0 {
		ok, err := confirm(fmt.Sprintf("Replace %d records in %s?", len(existing), appConfig.ResolvedSourcePath()))
		if err != nil || !ok {
			return false, err
		}
	}

	if err := dst.Save(ctx, raws); err != nil {
		return false, fmt.Errorf("writing %s source: %w", appConfig.Source, err)
	}
	logger.Info("records replaced", "source", appConfig.Source, "path", appConfig.ResolvedSourcePath(), "records", len(raws))
	return true, nil
}

func importRun(ctx context.Context, w io.Writer, from, fromPath string, confirm func(string) (bool, error)) error {
	if fromPath == "" {
		return errors.New("--from-path is required")
	}
	fromPath, err := homedir.Expand(fromPath)
	if err != nil {
		return err
	}
	if from == appConfig.Source && fromPath == appConfig.ResolvedSourcePath() {
		return errors.New("import source and destination are the same")
	}

	src, err := openBackend(from, fromPath)
	if err != nil {
		return err
	}
	defer src.Close()

	raws, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("reading %s: %w", fromPath, err)
	}
	if _, err := entry.Load(raws); err != nil {
		return fmt.Errorf("checking %s: %w", fromPath, err)
	}

	written, err := replaceRecords(ctx, raws, confirm)
	if err != nil {
		return err
	}
	if !written {
		fmt.Fprintln(w, "Import cancelled.")
		return nil
	}
	if jsonOutput {
		return ui.FormatJSON(w, map[string]any{"source": appConfig.Source, "path": appConfig.ResolvedSourcePath(), "imported": len(raws)})
	}
	fmt.Fprintf(w, "Imported %d entries into the %s source at %s\n", len(raws), appConfig.Source, appConfig.ResolvedSourcePath())
	return nil
}

func init() {
	importCmd.Flags().StringVar(&importFrom, "from", "json", "kind of the source to read (json|markdown|sqlite)")
	importCmd.Flags().StringVar(&importFromPath, "from-path", "", "file or directory to read")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "replace existing records without asking")
	rootCmd.AddCommand(importCmd)
}
