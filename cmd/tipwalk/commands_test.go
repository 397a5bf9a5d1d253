package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tipwalk/internal/adapter/output"
	"github.com/jmylchreest/tipwalk/internal/model"
	"github.com/jmylchreest/tipwalk/internal/store"
)

const testTour = `tips:
  - id: save
    anchor: {x: 10, y: 2}
    arrow: top
    text: Save your work here
  - id: quit
    anchor: {x: 60, y: 20}
    arrow: bottom
    text: Quit when you are done
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes the CLI with a private config path and fresh flag values.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	layoutOpts.width, layoutOpts.height, layoutOpts.units = 80, 24, unitsCells
	layoutOpts.search, layoutOpts.sortBy, layoutOpts.sortOrder = "", "tour", "asc"
	layoutOpts.format, layoutOpts.template = "plain", ""
	validateOpts.width, validateOpts.height = 80, 24
	configOpts.write = false
	progressOpts.forget = false
	globalOpts.configPath, globalOpts.verbose = "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	path := writeFile(t, "tour.yaml", testTour)

	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Equal(t, path+": 2 tips OK\n", out)
}

func TestValidate_Clamped(t *testing.T) {
	path := writeFile(t, "tour.yaml", testTour)

	out, err := run(t, "validate", path, "--width", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "warning: tip 1 (save) does not fit 12x24")
	assert.Contains(t, out, "2 tips OK, 2 warnings")
}

func TestValidate_DuplicateIDs(t *testing.T) {
	path := writeFile(t, "tour.yaml", testTour+`  - id: save
    anchor: {x: 1, y: 1}
    text: again
`)

	_, err := run(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate tip ID: save")
}

func TestValidate_InvalidTour(t *testing.T) {
	path := writeFile(t, "tour.yaml", "tips:\n  - anchor: {x: 1, y: 1}\n")

	_, err := run(t, "validate", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrEmptyText)
}

func TestLayout_IDs(t *testing.T) {
	path := writeFile(t, "tour.yaml", testTour)

	out, err := run(t, "layout", path, "--format", "ids", "--sort", "y", "--order", "desc")
	require.NoError(t, err)
	assert.Equal(t, "quit\nsave\n", out)

	out, err = run(t, "layout", path, "-f", "ids", "--search", "SAVE")
	require.NoError(t, err)
	assert.Equal(t, "save\n", out)
}

func TestLayout_JSONPoints(t *testing.T) {
	path := writeFile(t, "tour.json", `{"tips": [{"id": "a", "anchor": {"x": 110, "y": 150}, "arrow": "bottom", "text": "Hello"}]}`)

	out, err := run(t, "layout", path, "--units", "points", "--width", "390", "--height", "844", "-f", "json")
	require.NoError(t, err)

	var entries []output.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)

	l := entries[0].Layout
	assert.Equal(t, model.Bounds{Width: 390, Height: 844}, entries[0].Bounds)
	assert.InDelta(t, 150.0, l.Frame.MaxY(), 1e-9)
	assert.InDelta(t, 110.0, l.Frame.Origin.X+l.Arrow.Tip.X, 1e-9)
	assert.False(t, l.Clamped)
}

func TestLayout_CellAnchors(t *testing.T) {
	path := writeFile(t, "tour.yaml", testTour)

	out, err := run(t, "layout", path, "-f", "json")
	require.NoError(t, err)

	var entries []output.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	// A top arrow touches the bottom edge of its anchor cell.
	assert.Equal(t, model.Point{X: 10.5, Y: 3}, entries[0].Descriptor.Anchor)
	assert.Equal(t, 3.0, entries[0].Layout.Frame.Origin.Y)
}

func TestLayout_BadFlags(t *testing.T) {
	path := writeFile(t, "tour.yaml", testTour)

	_, err := run(t, "layout", path, "--units", "inches")
	assert.ErrorContains(t, err, "unknown units")

	_, err = run(t, "layout", path, "--sort", "color")
	assert.ErrorContains(t, err, "unknown sort field")

	_, err = run(t, "layout", path, "-f", "xml")
	assert.ErrorContains(t, err, "unknown output format")

	_, err = run(t, "layout", path, "--width", "-1")
	assert.Error(t, err)
}

func TestConfig(t *testing.T) {
	out, err := run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[geometry]")
	assert.Contains(t, out, "advance_on_tap = true")

	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	out, err = run(t, "config", "--write", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)
	assert.FileExists(t, path)
}

func TestThemes(t *testing.T) {
	out, err := run(t, "themes")
	require.NoError(t, err)
	assert.Contains(t, out, "* default")
	assert.Contains(t, out, "catppuccin")
}

func TestReloadTransform(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tips := []model.Descriptor{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	assert.Nil(t, reloadTransform("", log))

	transform := reloadTransform("b", log)
	assert.Equal(t, tips[1:], transform(tips))
	assert.Equal(t, tips[:1], transform(tips[:1]))
}

func TestProgress(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	path := writeFile(t, "tour.yaml", testTour)

	out, err := run(t, "progress", path)
	require.NoError(t, err)
	assert.Equal(t, "No progress saved for "+path+"\n", out)

	file, err := store.NewProgressFile("")
	require.NoError(t, err)
	require.NoError(t, file.Update(store.TourKey(path), func(r *store.Record) {
		r.Shown("save", true, time.Now())
		r.Shown("quit", false, time.Now())
	}))

	out, err = run(t, "progress")
	require.NoError(t, err)
	assert.Contains(t, out, "tour.yaml: stopped after 2 tips (at quit)")

	out, err = run(t, "progress", path, "--forget")
	require.NoError(t, err)
	assert.Equal(t, "Forgot "+path+"\n", out)

	out, err = run(t, "progress")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "progress", "--forget")
	assert.Error(t, err)
}

func TestFormatRecord(t *testing.T) {
	tests := []struct {
		name   string
		record store.Record
		want   string
	}{
		{"finished", store.Record{Tour: "/t/a.yaml", Completed: true, Completions: 2}, "a.yaml: finished, completed 2 times"},
		{"not started", store.Record{Tour: "/t/b.yaml"}, "b.yaml: not started"},
		{"stopped", store.Record{Tour: "/t/c.yaml", LastID: "x", Seen: 1, Completions: 1}, "c.yaml: stopped after 1 tip (at x), completed 1 time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRecord(tt.record))
		})
	}
}

func TestTourProgress_Resume(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	setupLogger()

	tips := []model.Descriptor{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	p := newTourProgress("tour.yaml")
	require.NotNil(t, p)

	// Nothing saved yet.
	assert.Equal(t, tips, p.resume(tips))

	p.shown(tips[0], true)
	p.shown(tips[1], false)
	assert.Equal(t, tips[1:], p.resume(tips))

	// A finished tour starts over.
	p.finished()
	assert.Equal(t, tips, p.resume(tips))

	// So does one whose last tip was removed from the file.
	p.shown(tips[2], true)
	assert.Equal(t, tips[:2], p.resume(tips[:2]))
}

func TestTourProgress_NoDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "")
	setupLogger()

	tips := []model.Descriptor{{ID: "a"}, {ID: "b"}}
	p := newTourProgress("tour.yaml")
	assert.Nil(t, p)
	assert.Equal(t, tips, p.resume(tips))
}
