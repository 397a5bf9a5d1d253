package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tipwalk/internal/canvas"
	"github.com/jmylchreest/tipwalk/internal/core"
	"github.com/jmylchreest/tipwalk/internal/geometry"
	"github.com/jmylchreest/tipwalk/internal/measure"
	"github.com/jmylchreest/tipwalk/internal/model"
)

var validateOpts struct {
	width  float64
	height float64
}

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a tour file",
	Long: `Check that a tour file parses, that every tip is valid and that tip IDs
are unique.

Tips that only fit a terminal of the given size by shrinking are reported
as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Float64Var(&validateOpts.width, "width", 80,
		"Terminal width to check against")
	validateCmd.Flags().Float64Var(&validateOpts.height, "height", 24,
		"Terminal height to check against")
}

func runValidate(cmd *cobra.Command, args []string) error {
	c := getConfig()
	source := args[0]

	tips, err := loadTips(source, terminalOptions(c))
	if err != nil {
		return err
	}

	if dups := core.DuplicateIDs(tips); len(dups) > 0 {
		return fmt.Errorf("%s: duplicate tip %s: %s",
			source, english.PluralWord(len(dups), "ID", ""), strings.Join(dups, ", "))
	}

	out := cmd.OutOrStdout()
	engine := geometry.NewEngine(measure.NewCellMeasurer(), c.Geometry.Constants())
	b := model.Bounds{Width: validateOpts.width, Height: validateOpts.height}
	clamped := 0
	for i, d := range canvas.CellAnchors(tips) {
		l := engine.Layout(d, b)
		if !l.Clamped {
			continue
		}
		clamped++
		fmt.Fprintf(out, "warning: tip %d (%s) does not fit %gx%g and is shrunk\n",
			i+1, d.ID, b.Width, b.Height)
	}

	fmt.Fprintf(out, "%s: %s OK", source, english.Plural(len(tips), "tip", ""))
	if clamped > 0 {
		fmt.Fprintf(out, ", %s", english.Plural(clamped, "warning", ""))
	}
	fmt.Fprintln(out)
	return nil
}
