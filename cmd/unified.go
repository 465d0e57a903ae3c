package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sousnote/internal/grocery"
)

// unifiedCmd prints the consolidated grocery list across all notes.
var unifiedCmd = &cobra.Command{
	Use:   "unified",
	Short: "Show the unified grocery list",
	Long: `Consolidates recipe ingredients and grocery-note tasks into one
categorized shopping list, de-duplicated within each category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		list, err := appInstance.UnifiedService.Build(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to build unified list: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("Nothing to shop for.")
			return nil
		}

		header := color.New(color.Bold, color.FgCyan)
		// Iterate the canonical order so output is stable run to run.
		for _, cat := range grocery.Categories {
			items, ok := list[cat]
			if !ok {
				continue
			}
			header.Printf("%s\n", cat)
			for _, item := range items {
				mark := "[ ]"
				if item.Done {
					mark = color.GreenString("[x]")
				}
				line := fmt.Sprintf("  %s %s", mark, item.Name)
				if item.Quantity != "" {
					line += fmt.Sprintf(" (%s)", item.Quantity)
				}
				if item.SourceNote != "" {
					line += color.New(color.Faint).Sprintf("  from %s", item.SourceNote)
				}
				fmt.Println(line)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unifiedCmd)
}
