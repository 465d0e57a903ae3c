package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sousnote/internal/clix"
)

var addCategory string

// addCmd captures free text into a note via the extraction chain.
var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Capture text into a new or existing note",
	Long: `Runs AI task extraction over the given text (arguments or stdin) and
stores the result. When the text reads as a continuation ("also add eggs"),
it is appended to the latest note in the same category instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		text, err := clix.ReadInput(args)
		if err != nil {
			return err
		}

		result, err := appInstance.NoteService.CreateFromText(cmd.Context(), text, addCategory)
		if err != nil {
			return fmt.Errorf("failed to add note: %w", err)
		}

		verb := color.GreenString("Created")
		if result.Appended {
			verb = color.YellowString("Appended to")
		}
		fmt.Printf("%s note %s (%s, %d tasks)\n", verb, result.Note.ID, result.Note.Title, len(result.Note.Tasks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category hint (e.g. grocery, work)")
}
