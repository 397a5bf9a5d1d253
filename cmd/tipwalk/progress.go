package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tipwalk/internal/store"
)

var progressOpts struct {
	forget bool
}

var progressCmd = &cobra.Command{
	Use:   "progress [FILE]",
	Short: "Show or forget saved tour progress",
	Long: `Show how far each tour got. tipwalk records the last tip shown and every
finished run in ~/.local/share/tipwalk/progress.json; tipwalk tour --resume
continues an unfinished tour from there.

With a FILE only that tour is shown. With --forget its progress is removed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgress,
}

func init() {
	rootCmd.AddCommand(progressCmd)

	progressCmd.Flags().BoolVar(&progressOpts.forget, "forget", false,
		"Remove the saved progress of FILE")
}

func runProgress(cmd *cobra.Command, args []string) error {
	file, err := store.NewProgressFile("")
	if err != nil {
		return fmt.Errorf("failed to locate progress file: %w", err)
	}
	out := cmd.OutOrStdout()

	if progressOpts.forget {
		if len(args) == 0 {
			return fmt.Errorf("--forget needs a tour file")
		}
		removed, err := file.Forget(store.TourKey(args[0]))
		if err != nil {
			return fmt.Errorf("failed to update progress: %w", err)
		}
		if !removed {
			fmt.Fprintf(out, "No progress saved for %s\n", args[0])
			return nil
		}
		fmt.Fprintf(out, "Forgot %s\n", args[0])
		return nil
	}

	all, err := file.Load()
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	records := all.Records()
	if len(args) > 0 {
		r, ok := all.Get(store.TourKey(args[0]))
		if !ok {
			fmt.Fprintf(out, "No progress saved for %s\n", args[0])
			return nil
		}
		records = []store.Record{*r}
	}

	for _, r := range records {
		fmt.Fprintln(out, formatRecord(r))
	}
	return nil
}

// formatRecord renders one progress line.
func formatRecord(r store.Record) string {
	var state string
	switch {
	case r.Completed:
		state = "finished"
	case r.LastID == "":
		state = "not started"
	default:
		state = fmt.Sprintf("stopped after %s (at %s)", english.Plural(r.Seen, "tip", ""), r.LastID)
	}
	line := fmt.Sprintf("%s: %s", filepath.Base(r.Tour), state)
	if r.Completions > 0 {
		line += fmt.Sprintf(", completed %s", english.Plural(r.Completions, "time", ""))
	}
	if r.UpdatedAt > 0 {
		line += ", " + humanize.Time(time.Unix(r.UpdatedAt, 0))
	}
	return line
}
