package cmd

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// toggleCmd flips one task's done state by positional index.
var toggleCmd = &cobra.Command{
	Use:   "toggle <note-id> <task-index>",
	Short: "Toggle a task's done state",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid note ID %q: %w", args[0], err)
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid task index %q: %w", args[1], err)
		}

		note, err := appInstance.NoteService.ToggleTask(cmd.Context(), id, index)
		if err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}
		task := note.Tasks[index]
		state := "open"
		if task.Done {
			state = "done"
		}
		fmt.Printf("Task %d of %q is now %s: %s\n", index, note.Title, state, task.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
