package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var transcribeSave bool

// transcribeCmd turns an audio file into text, optionally capturing the
// transcript as a note in one step.
var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe an audio recording",
	Long: `Transcribes an audio file through the configured providers (Whisper,
then Gemini). With --save the transcript is immediately captured as a
note through the extraction chain.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		text, err := appInstance.Transcriber.Transcribe(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("transcription failed: %w", err)
		}

		if !transcribeSave {
			fmt.Println(text)
			return nil
		}

		result, err := appInstance.NoteService.CreateFromText(cmd.Context(), text, "")
		if err != nil {
			return fmt.Errorf("failed to save transcript as note: %w", err)
		}
		fmt.Printf("Transcribed and stored note %s (%q, %d tasks)\n",
			result.Note.ID, result.Note.Title, len(result.Note.Tasks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transcribeCmd)
	transcribeCmd.Flags().BoolVar(&transcribeSave, "save", false, "Capture the transcript as a note")
}
