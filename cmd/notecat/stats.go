package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/pbaille/notecat/internal/domain"
	"github.com/pbaille/notecat/internal/store"
)

func statsCmd(a *app) *cobra.Command {
	var file, rng string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show analytics for an exported note list",
		RunE: func(cmd *cobra.Command, args []string) error {
			window := store.WindowWeek
			switch rng {
			case "week":
			case "month":
				window = store.WindowMonth
			default:
				return fmt.Errorf("range must be week or month, got %q", rng)
			}

			notes, err := readNotes(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			s := store.New(store.WithLogger(a.logger))
			// Append prepends, so walk backwards to keep the exported order
			for i := len(notes) - 1; i >= 0; i-- {
				if err := s.Append(notes[i]); err != nil {
					return err
				}
			}

			printStats(cmd.OutOrStdout(), s, window)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON array of notes, - for stdin")
	cmd.Flags().StringVarP(&rng, "range", "r", "week", "trend window: week or month")
	return cmd
}

func readNotes(path string, stdin io.Reader) ([]domain.Note, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open notes: %w", err)
		}
		defer f.Close()
		r = f
	}

	var notes []domain.Note
	if err := json.NewDecoder(r).Decode(&notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

func printStats(w io.Writer, s *store.Store, window int) {
	bold := color.New(color.Bold)
	activity := s.Activity()

	bold.Fprintf(w, "%d day streak\n", activity.Streak)
	fmt.Fprintf(w, "%d total notes (%d today)\n", activity.Total, activity.Today)
	if activity.RemainingDays > 0 {
		fmt.Fprintf(w, "Keep it up, you're %d days away from a 7 day streak!\n", activity.RemainingDays)
	} else {
		fmt.Fprintln(w, "Amazing! You've achieved a 7 day streak!")
	}

	daily := uitable.New()
	daily.AddRow("DAY", "NOTES", "")
	for _, d := range s.DailyCounts(window) {
		daily.AddRow(d.Day, d.Count, strings.Repeat("#", d.Count))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, daily)

	categories := uitable.New()
	categories.AddRow("CATEGORY", "NOTES")
	for _, c := range s.CategoryDistribution() {
		categories.AddRow(c.Name, c.Count)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, categories)
	if top := s.TopCategory(); top != "" {
		fmt.Fprintf(w, "Most used: %s\n", top)
	}

	board := uitable.New()
	board.AddRow("#", "MEMBER", "NOTES")
	for i, c := range s.Leaderboard() {
		board.AddRow(i+1, c.Name, c.Count)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, board)
}
