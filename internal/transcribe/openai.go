package transcribe

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// audioTranscriber is the slice of the OpenAI client this provider needs.
type audioTranscriber interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// OpenAITranscriber transcribes audio through the Whisper API.
type OpenAITranscriber struct {
	client audioTranscriber
	model  string
}

func NewOpenAITranscriber(client audioTranscriber, model string) *OpenAITranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &OpenAITranscriber{client: client, model: model}
}

func (t *OpenAITranscriber) Name() string { return "openai" }

func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if t.client == nil {
		return "", fmt.Errorf("openai transcriber is not initialized with a client")
	}
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription failed: %w", err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("whisper returned an empty transcript")
	}
	return text, nil
}
