package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sousnote/internal/clix"
)

// reprocessCmd queues background re-extraction for an existing note.
var reprocessCmd = &cobra.Command{
	Use:   "reprocess <note-id> [text...]",
	Short: "Re-run task extraction for a note in the background",
	Long: `Queues a background job that runs AI task extraction over the given
text (arguments or stdin) and replaces the note's tasks with the result.
Useful after correcting a bad dictation. Requires a running worker.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		noteID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid note ID %q: %w", args[0], err)
		}
		text, err := clix.ReadInput(args[1:])
		if err != nil {
			return err
		}

		if err := appInstance.NoteService.ReextractTasks(cmd.Context(), noteID, text); err != nil {
			return fmt.Errorf("failed to queue re-extraction: %w", err)
		}
		fmt.Printf("Queued re-extraction for note %s\n", noteID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reprocessCmd)
}
