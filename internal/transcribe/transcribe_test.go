package transcribe

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranscriber struct {
	name  string
	text  string
	err   error
	calls int
}

func (s *stubTranscriber) Name() string { return s.name }

func (s *stubTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	first := &stubTranscriber{name: "a", text: "hello"}
	second := &stubTranscriber{name: "b", text: "unused"}

	text, err := NewChain(first, second).Transcribe(context.Background(), "x.m4a")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, 0, second.calls)
}

func TestChainFallsThrough(t *testing.T) {
	first := &stubTranscriber{name: "a", err: errors.New("down")}
	second := &stubTranscriber{name: "b", text: "from b"}

	text, err := NewChain(first, second).Transcribe(context.Background(), "x.m4a")
	require.NoError(t, err)
	assert.Equal(t, "from b", text)
}

func TestChainErrorsWhenExhausted(t *testing.T) {
	downstream := errors.New("down")
	_, err := NewChain(&stubTranscriber{name: "a", err: downstream}).Transcribe(context.Background(), "x.m4a")
	require.Error(t, err)
	assert.ErrorIs(t, err, downstream)

	_, err = NewChain().Transcribe(context.Background(), "x.m4a")
	require.Error(t, err)
}

type fakeAudioClient struct {
	resp openai.AudioResponse
	err  error
	req  openai.AudioRequest
}

func (f *fakeAudioClient) CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error) {
	f.req = request
	return f.resp, f.err
}

func TestOpenAITranscriber(t *testing.T) {
	client := &fakeAudioClient{resp: openai.AudioResponse{Text: "  buy milk  "}}
	tr := NewOpenAITranscriber(client, "")

	text, err := tr.Transcribe(context.Background(), "note.m4a")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", text)
	assert.Equal(t, openai.Whisper1, client.req.Model)
	assert.Equal(t, "note.m4a", client.req.FilePath)
}

func TestOpenAITranscriberRejectsEmptyTranscript(t *testing.T) {
	tr := NewOpenAITranscriber(&fakeAudioClient{resp: openai.AudioResponse{Text: "   "}}, "whisper-1")
	_, err := tr.Transcribe(context.Background(), "note.m4a")
	require.Error(t, err)
}

func TestAudioMIMETypeFallback(t *testing.T) {
	assert.Equal(t, "audio/mpeg", audioMIMEType("clip.unknownext"))
}
