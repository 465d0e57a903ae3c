package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"sousnote/internal/clix"
	"sousnote/internal/store"
)

var (
	listLimit    int
	listOffset   int
	listCategory string
)

// listCmd shows stored notes in a table, newest first.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		pagination, err := clix.ParsePagination(cmd.Flags())
		if err != nil {
			return err
		}

		notes, err := appInstance.NoteService.List(cmd.Context(), store.NoteListParams{
			Category: listCategory,
			Limit:    pagination.Limit,
			Offset:   pagination.Offset,
		})
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}
		if len(notes) == 0 {
			fmt.Println("No notes found.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Title", "Category", "Tasks", "Created"})
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, n := range notes {
			kind := fmt.Sprintf("%d", len(n.Tasks))
			if n.IsRecipe {
				kind = "recipe"
			}
			table.Append([]string{
				n.ID.String(),
				n.Title,
				n.Category,
				kind,
				n.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
		table.Render()
		fmt.Printf("Displayed %d notes.\n", len(notes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 20, "Number of notes to display")
	listCmd.Flags().IntVarP(&listOffset, "offset", "o", 0, "Number of notes to skip")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category")
}
