package transcribe

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// GeminiTranscriber sends the audio inline to a Gemini model with a
// transcription instruction. It backs up Whisper in the chain.
type GeminiTranscriber struct {
	client *genai.Client
	model  string
}

func NewGeminiTranscriber(client *genai.Client, model string) *GeminiTranscriber {
	return &GeminiTranscriber{client: client, model: model}
}

func (t *GeminiTranscriber) Name() string { return "gemini" }

func (t *GeminiTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if t.client == nil {
		return "", fmt.Errorf("gemini transcriber is not initialized (missing API key)")
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	model := t.client.GenerativeModel(t.model)
	resp, err := model.GenerateContent(ctx,
		genai.Text("Transcribe this audio recording verbatim. Return only the spoken text."),
		genai.Blob{MIMEType: audioMIMEType(audioPath), Data: data},
	)
	if err != nil {
		return "", fmt.Errorf("gemini transcription failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty transcript")
	}
	return text, nil
}

func audioMIMEType(path string) string {
	if mt := mime.TypeByExtension(filepath.Ext(path)); mt != "" {
		return mt
	}
	return "audio/mpeg"
}
