package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sousnote/internal/clix"
	"sousnote/internal/ingest"
)

var recipeFromHTML string

// recipeCmd generates a recipe note, either from a dish description or
// imported from a saved HTML page.
var recipeCmd = &cobra.Command{
	Use:   "recipe [description...]",
	Short: "Generate and store a recipe note",
	Long: `Asks the AI chain for a full recipe and stores it as a recipe note.
With --from-html, the recipe request is built from the text of a saved
web page instead of a typed description.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		var request string
		if recipeFromHTML != "" {
			f, err := os.Open(recipeFromHTML)
			if err != nil {
				return fmt.Errorf("open HTML file: %w", err)
			}
			defer f.Close()
			page, err := ingest.ExtractPage(f)
			if err != nil {
				return fmt.Errorf("parse HTML file: %w", err)
			}
			if page.Title != "" {
				request = page.Title + "\n\n" + page.Text
			} else {
				request = page.Text
			}
		} else {
			request, err = clix.ReadInput(args)
			if err != nil {
				return err
			}
		}

		note, err := appInstance.NoteService.CreateRecipe(cmd.Context(), request)
		if err != nil {
			return fmt.Errorf("failed to generate recipe: %w", err)
		}
		fmt.Printf("Stored recipe %q (%s) with %d ingredients.\n",
			note.Title, note.ID, len(note.RecipeDetails.Ingredients))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recipeCmd)
	recipeCmd.Flags().StringVar(&recipeFromHTML, "from-html", "", "Path to a saved HTML page to import")
}
