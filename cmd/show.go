package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// showCmd prints one note in full.
var showCmd = &cobra.Command{
	Use:   "show <note-id>",
	Short: "Show one note with its tasks or recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid note ID %q: %w", args[0], err)
		}

		note, err := appInstance.NoteService.Get(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to load note: %w", err)
		}

		fmt.Printf("%s  [%s]\n", color.New(color.Bold).Sprint(note.Title), note.Category)
		fmt.Printf("ID: %s\nCreated: %s\n\n", note.ID, note.CreatedAt.Format("2006-01-02 15:04:05"))

		if note.IsRecipe && note.RecipeDetails != nil {
			r := note.RecipeDetails
			if r.PrepTime != "" || r.CookTime != "" {
				fmt.Printf("Prep: %s  Cook: %s  Serves: %d\n\n", r.PrepTime, r.CookTime, r.Servings)
			}
			fmt.Println("Ingredients:")
			for _, ing := range r.Ingredients {
				fmt.Printf("  - %s\n", ing)
			}
			fmt.Println("\nInstructions:")
			for i, step := range r.Instructions {
				fmt.Printf("  %d. %s\n", i+1, step)
			}
			return nil
		}

		if len(note.Tasks) == 0 {
			fmt.Println("(no tasks)")
			return nil
		}
		for i, t := range note.Tasks {
			mark := "[ ]"
			if t.Done {
				mark = color.GreenString("[x]")
			}
			fmt.Printf("  %2d %s %s\n", i, mark, t.Text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
