package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tipwalk/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available color themes",
	Long: `List the bundled themes and the themes in ~/.config/tipwalk/themes/.
A user theme with the name of a bundled one replaces it.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	themes, err := theme.ListAvailableThemes()
	if err != nil {
		return fmt.Errorf("failed to list themes: %w", err)
	}

	selected := getConfig().Theme.Name
	out := cmd.OutOrStdout()
	for _, t := range themes {
		marker := " "
		if t.Name == selected {
			marker = "*"
		}
		source := "bundled"
		if !t.IsBundled {
			source = t.Path
		}
		fmt.Fprintf(out, "%s %-12s %s\n", marker, t.Name, source)
	}
	return nil
}
