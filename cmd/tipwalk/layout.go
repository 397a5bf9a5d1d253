package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tipwalk/internal/adapter/input"
	"github.com/jmylchreest/tipwalk/internal/adapter/output"
	"github.com/jmylchreest/tipwalk/internal/canvas"
	"github.com/jmylchreest/tipwalk/internal/core"
	"github.com/jmylchreest/tipwalk/internal/geometry"
	"github.com/jmylchreest/tipwalk/internal/measure"
	"github.com/jmylchreest/tipwalk/internal/model"
)

// Layout units.
const (
	unitsCells  = "cells"
	unitsPoints = "points"
)

var layoutOpts struct {
	width  float64
	height float64
	units  string

	// Filter and sort options
	search    string
	sortBy    string
	sortOrder string

	// Output options
	format   string
	template string
}

var layoutCmd = &cobra.Command{
	Use:   "layout FILE",
	Short: "Print the computed layout of every tip",
	Long: `Lay out every tip of a tour against a screen of the given size and
print the result.

In cells mode (the default) anchors are terminal cells, exactly as the tour
command places them, and sizes come from the config. In points mode anchors
are points, text is measured as a monospace font and the library defaults
apply.

Examples:
  # Layouts for an 80x24 terminal
  tipwalk layout tour.yaml

  # Point layouts as JSON
  tipwalk layout tour.yaml --units points --width 390 --height 844 -f json

  # Only tips mentioning "save", in reading order
  tipwalk layout tour.yaml --search save --sort position

  # Custom output
  tipwalk layout tour.yaml --template '{{.Descriptor.ID}} {{num .Layout.Frame.Origin.X}}'`,
	Args: cobra.ExactArgs(1),
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)

	layoutCmd.Flags().Float64Var(&layoutOpts.width, "width", 80,
		"Screen width")
	layoutCmd.Flags().Float64Var(&layoutOpts.height, "height", 24,
		"Screen height")
	layoutCmd.Flags().StringVar(&layoutOpts.units, "units", unitsCells,
		"Units of anchors and sizes (cells, points)")

	layoutCmd.Flags().StringVarP(&layoutOpts.search, "search", "s", "",
		"Only tips whose ID or text contains this")
	layoutCmd.Flags().StringVar(&layoutOpts.sortBy, "sort", "tour",
		"Sort by field (tour, position, x, y)")
	layoutCmd.Flags().StringVar(&layoutOpts.sortOrder, "order", "asc",
		"Sort order (asc, desc)")

	layoutCmd.Flags().StringVarP(&layoutOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml, ids)")
	layoutCmd.Flags().StringVar(&layoutOpts.template, "template", "",
		"Custom Go template for plain output")
}

func runLayout(cmd *cobra.Command, args []string) error {
	if layoutOpts.width < 0 || layoutOpts.height < 0 {
		return fmt.Errorf("screen size must not be negative")
	}

	units := strings.ToLower(layoutOpts.units)
	engine, opts, err := layoutEngine(units)
	if err != nil {
		return err
	}

	tips, err := loadTips(args[0], opts)
	if err != nil {
		return err
	}

	if layoutOpts.search != "" {
		tips = core.Search(tips, layoutOpts.search)
	}

	field, err := core.ParseSortField(layoutOpts.sortBy)
	if err != nil {
		return err
	}
	order, err := core.ParseSortOrder(layoutOpts.sortOrder)
	if err != nil {
		return err
	}
	core.Sort(tips, core.SortOptions{Field: field, Order: order})

	if units == unitsCells {
		tips = canvas.CellAnchors(tips)
	}

	formatter, err := createFormatter()
	if err != nil {
		return err
	}

	b := model.Bounds{Width: layoutOpts.width, Height: layoutOpts.height}
	entries := output.Entries(engine, tips, b)
	if len(entries) == 0 {
		logger.Debug("no tips to output")
		return nil
	}
	return formatter.Format(cmd.OutOrStdout(), entries)
}

// layoutEngine returns the engine and base styles for units.
func layoutEngine(units string) (*geometry.Engine, input.Options, error) {
	switch units {
	case unitsCells:
		c := getConfig()
		return geometry.NewEngine(measure.NewCellMeasurer(), c.Geometry.Constants()), terminalOptions(c), nil
	case unitsPoints:
		return geometry.NewEngine(measure.NewMonospaceMeasurer(), geometry.DefaultConstants()), input.DefaultOptions(), nil
	default:
		return nil, input.Options{}, fmt.Errorf("unknown units %q (want %s or %s)", units, unitsCells, unitsPoints)
	}
}

// createFormatter creates the output formatter based on options.
func createFormatter() (output.Formatter, error) {
	opts := output.DefaultFormatterOptions()
	opts.Template = layoutOpts.template
	return output.NewFormatter(output.FormatType(strings.ToLower(layoutOpts.format)), opts)
}
