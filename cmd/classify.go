package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sousnote/internal/clix"
	"sousnote/internal/shape"
)

var (
	classifyTitle string
	classifyAI    bool
)

// classifyCmd classifies a payload into a rendering shape, or (with
// --ai) asks the AI chain for a coarse content type.
var classifyCmd = &cobra.Command{
	Use:   "classify [payload...]",
	Short: "Classify a payload into a rendering shape",
	Long: `Runs shape selection over the given payload (arguments or stdin).
The payload may be raw JSON or plain text; classification never fails.
With --ai, the payload is instead sent to the AI chain for content-type
identification.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		input, err := clix.ReadInput(args)
		if err != nil {
			return err
		}

		if classifyAI {
			ident, err := appInstance.NoteService.Classify(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("content identification failed: %w", err)
			}
			fmt.Printf("Type: %s (confidence %.2f)\n", ident.ContentType, ident.Confidence)
			if ident.Reasoning != "" {
				fmt.Printf("Reasoning: %s\n", ident.Reasoning)
			}
			return nil
		}

		sel := shape.Select(input, classifyTitle)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sel)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVarP(&classifyTitle, "title", "t", "", "Title to attach to the selection")
	classifyCmd.Flags().BoolVar(&classifyAI, "ai", false, "Use AI content identification instead of shape selection")
}
