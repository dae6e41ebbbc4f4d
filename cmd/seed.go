package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"time"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/ui"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

// profile defines a writing habit for generating seed data.
type profile struct {
	name        string
	description string
	// daysBack is how far back to start generating entries.
	daysBack int
	// frequency is the approximate probability of writing on any given day (0.0–1.0).
	frequency float64
	// maxComponents bounds the number of scored paragraphs per entry.
	maxComponents int
	// nsfwChance is the probability of an entry being marked nsfw.
	nsfwChance float64
	// tagChance is the probability of each optional topic tag.
	tagChance map[string]float64
}

var profiles = map[string]profile{
	"steady": {
		name:          "steady",
		description:   "Writes every few days for half a year",
		daysBack:      180,
		frequency:     0.35,
		maxComponents: 3,
		nsfwChance:    0.08,
		tagChance:     map[string]float64{"ffs": 0.15, "srs": 0.1, "depression": 0.2, "substanceUse": 0.05},
	},
	"sparse": {
		name:          "sparse",
		description:   "Occasional long entries over two years",
		daysBack:      730,
		frequency:     0.06,
		maxComponents: 6,
		nsfwChance:    0.05,
		tagChance:     map[string]float64{"ffs": 0.3, "srs": 0.3, "depression": 0.15, "substanceUse": 0.02},
	},
	"weekender": {
		name:          "weekender",
		description:   "Writes on most weekends and rarely during the week (~120 days)",
		daysBack:      120,
		frequency:     0.0, // handled specially per weekday/weekend
		maxComponents: 2,
		nsfwChance:    0.12,
		tagChance:     map[string]float64{"ffs": 0.05, "srs": 0.05, "depression": 0.3, "substanceUse": 0.1},
	},
}

var (
	seedValue int64
	seedYes   bool
)

var seedCmd = &cobra.Command{
	Use:   "seed [profile]",
	Short: "Fill the configured source with sample entries",
	Long: `Generate realistic sample entries and write them to the configured source,
replacing what is there.

Available profiles:
  steady    – Every few days for half a year
  sparse    – Occasional long entries over two years
  weekender – Mostly weekends (~120 days)

If no profile is specified, "steady" is used.`,
	Example: `  diary seed
  diary seed sparse --seed 42
  diary --source markdown seed weekender --yes
  diary seed --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if listProfiles, _ := cmd.Flags().GetBool("list"); listProfiles {
			printProfiles(cmd.OutOrStdout())
			return nil
		}

		profileName := "steady"
		if len(args) > 0 {
			profileName = args[0]
		}
		seed := seedValue
		if !cmd.Flags().Changed("seed") {
			seed = time.Now().UnixNano()
		}
		confirm := func(prompt string) (bool, error) {
			if seedYes {
				return true, nil
			}
			return ui.Confirm(prompt, ui.ResolveTheme(appConfig.Theme))
		}
		return seedRun(cmd.Context(), cmd.OutOrStdout(), profileName, seed, time.Now(), confirm)
	},
}

func seedRun(ctx context.Context, w io.Writer, profileName string, seed int64, now time.Time, confirm func(string) (bool, error)) error {
	p, ok := profiles[profileName]
	if !ok {
		return fmt.Errorf("unknown profile %q (run 'diary seed --list' to see available profiles)", profileName)
	}

	raws := generate(p, rand.New(rand.NewSource(seed)), now)
	written, err := replaceRecords(ctx, raws, confirm)
	if err != nil {
		return err
	}
	if !written {
		fmt.Fprintln(w, "Seeding cancelled.")
		return nil
	}

	if jsonOutput {
		return ui.FormatJSON(w, map[string]any{"profile": profileName, "seed": seed, "entries_created": len(raws)})
	}
	fmt.Fprintf(w, "Seeded with profile %q:\n", profileName)
	fmt.Fprintf(w, "  Entries created: %d\n", len(raws))
	fmt.Fprintf(w, "  Seed:            %d\n", seed)
	return nil
}

func printProfiles(w io.Writer) {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Profile"), bold.Sprint("Description"))
	for _, name := range names {
		tbl.AddRow(name, profiles[name].description)
	}
	fmt.Fprintln(w, tbl)
}

// generate builds the raw records of a profile, oldest first.
func generate(p profile, rng *rand.Rand, now time.Time) []entry.Raw {
	var raws []entry.Raw
	start := now.AddDate(0, 0, -p.daysBack)
	for day := start; !day.After(now); day = day.AddDate(0, 0, 1) {
		if !shouldWrite(p, day, rng) {
			continue
		}
		at := randomTimeOfDay(day, rng)
		if at.After(now) {
			at = now
		}

		n := 1 + rng.Intn(p.maxComponents)
		components := make([]entry.Component, n)
		for i := range components {
			components[i] = entry.Component{Text: seedTexts[rng.Intn(len(seedTexts))]}
			// Roughly a third of the paragraphs stay unscored.
			if rng.Float64() < 0.66 {
				components[i].Score = float64(1 + rng.Intn(100))
			}
		}

		raws = append(raws, entry.Raw{
			Date:       []int64{entry.FormatDate(at)},
			Components: components,
			Properties: entry.Properties{
				NSFW: rng.Float64() < p.nsfwChance,
				Tags: entry.Tags{
					FFS:          rng.Float64() < p.tagChance["ffs"],
					SRS:          rng.Float64() < p.tagChance["srs"],
					Depression:   rng.Float64() < p.tagChance["depression"],
					SubstanceUse: rng.Float64() < p.tagChance["substanceUse"],
				},
			},
		})
	}
	return raws
}

// shouldWrite determines if this profile would write on the given day.
func shouldWrite(p profile, day time.Time, rng *rand.Rand) bool {
	wd := day.Weekday()
	if p.name == "weekender" {
		if wd == time.Saturday || wd == time.Sunday {
			return rng.Float64() < 0.8
		}
		return rng.Float64() < 0.1
	}
	return rng.Float64() < p.frequency
}

// randomTimeOfDay returns a time on the given day at a realistic hour.
func randomTimeOfDay(day time.Time, rng *rand.Rand) time.Time {
	// Most journal entries happen between 7am and 10pm
	hour := 7 + rng.Intn(15)
	minute := rng.Intn(60)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

var seedTexts = []string{
	"Picked up the new prescription today. The pharmacist used the right name without me asking.",
	"Voice practice for twenty minutes. Resonance is getting easier to find in the morning.",
	"Told my sister. She cried, then asked which name I wanted on the birthday cake.",
	"Bloodwork came back in range. The endocrinologist wants to wait another three months before changing the dose.",
	"Bad day. Stayed in bed until noon and did not answer any messages.",
	"Consultation with the surgeon went better than expected. Long waiting list, but a date is a date.",
	"Skin is softer. Noticed it washing my face and just stood there for a minute.",
	"Work meeting where someone corrected themselves mid-sentence. Small thing, big thing.",
	"Drank too much at the party and regret the conversation with my old roommate.",
	"Bought a dress in a shop instead of online for the first time.",
	"Therapy session about the letter to my parents. Not sending it yet.",
	"Hair is long enough to tie back. Tried three styles before giving up and laughing.",
	"Read old entries from last spring. Hard to recognise the person writing them.",
	"Support group had two new people tonight. Remembered being that nervous.",
	"Insurance denied the claim again. Filed the appeal and went for a long walk.",
	"Nothing special happened today, and that felt like the point.",
}

func init() {
	seedCmd.Flags().Bool("list", false, "list available profiles")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "random seed for reproducible data")
	seedCmd.Flags().BoolVarP(&seedYes, "yes", "y", false, "replace existing records without asking")
	rootCmd.AddCommand(seedCmd)
}
