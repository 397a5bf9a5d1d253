package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmylchreest/tipwalk/internal/adapter/input"
	"github.com/jmylchreest/tipwalk/internal/config"
	"github.com/jmylchreest/tipwalk/internal/model"
)

// loadTips reads the tour at source. Tips start from the styles in opts.
func loadTips(source string, opts input.Options) ([]model.Descriptor, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adapter, err := input.NewAdapter(source, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create adapter: %w", err)
	}

	tips, err := adapter.Import(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tour: %w", err)
	}

	logger.Debug("loaded tour", "source", source, "adapter", adapter.Name(), "tips", len(tips))
	return tips, nil
}

// terminalOptions returns the cell-based styles from the config.
func terminalOptions(c *config.Config) input.Options {
	return input.Options{
		Drawing:     c.Drawing.Style(),
		Positioning: c.Positioning.Style(),
	}
}
