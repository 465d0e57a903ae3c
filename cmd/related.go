package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var relatedK int

// relatedCmd lists the notes nearest to one note in embedding space.
var relatedCmd = &cobra.Command{
	Use:   "related <note-id>",
	Short: "Find notes similar to a given note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if appInstance.EmbeddingService == nil {
			return fmt.Errorf("related notes require an OpenAI API key and a configured vector store")
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid note ID %q: %w", args[0], err)
		}

		related, err := appInstance.EmbeddingService.Related(cmd.Context(), id, relatedK)
		if err != nil {
			return fmt.Errorf("failed to find related notes: %w", err)
		}
		if len(related) == 0 {
			fmt.Println("No related notes found (is the note embedded yet?).")
			return nil
		}

		for _, r := range related {
			fmt.Printf("%.4f  %s  %s [%s]\n", r.Distance, r.Note.ID, r.Note.Title, r.Note.Category)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(relatedCmd)
	relatedCmd.Flags().IntVarP(&relatedK, "count", "k", 5, "Number of related notes to return")
}
