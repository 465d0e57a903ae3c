package gateway

import (
	"context"
	"strings"

	"github.com/neurosnap/sentences"

	"sousnote/internal/grocery"
)

func narrowKeyFor(text string) string {
	return string(grocery.Narrow(grocery.Categorize(text)))
}

// LocalExtractor is the last link of the extraction fallback chain: a
// heuristic that needs no network. It splits the note into sentences and
// treats each one as a task candidate, so a dictation still turns into a
// usable list when every remote provider is down.
type LocalExtractor struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

func NewLocalExtractor() *LocalExtractor {
	return &LocalExtractor{tokenizer: sentences.NewSentenceTokenizer(nil)}
}

func (e *LocalExtractor) Name() string { return "local" }

// appendMarkers are phrases that signal the note continues an existing
// list rather than starting a new one.
var appendMarkers = []string{"also add", "also get", "and also", "don't forget", "add to the list", "one more thing"}

func (e *LocalExtractor) ExtractTasks(ctx context.Context, text string) (TaskExtraction, error) {
	result := DefaultTaskExtraction()
	result.Reason = "heuristic sentence split"

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return result, nil
	}

	lower := strings.ToLower(trimmed)
	for _, marker := range appendMarkers {
		if strings.Contains(lower, marker) {
			result.Intent = IntentAppend
			break
		}
	}

	for _, line := range e.split(trimmed) {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*• \t"))
		line = strings.TrimRight(line, ".!")
		if line == "" {
			continue
		}
		result.Tasks = append(result.Tasks, ExtractedTask{Text: line})
	}
	return result, nil
}

// ExtractGroceries buckets each sentence through the keyword categorizer's
// narrow shape. Callers wanting real quantities need a remote provider.
func (e *LocalExtractor) ExtractGroceries(ctx context.Context, text string) (GroceryExtraction, error) {
	result := DefaultGroceryExtraction()
	extraction, _ := e.ExtractTasks(ctx, text)
	for _, task := range extraction.Tasks {
		key := narrowKeyFor(task.Text)
		result.Categories[key] = append(result.Categories[key], GroceryEntry{Name: task.Text})
	}
	return result, nil
}

func (e *LocalExtractor) IdentifyContent(ctx context.Context, text string) (ContentIdentification, error) {
	result := DefaultContentIdentification()
	result.Reasoning = "heuristic fallback"
	return result, nil
}

// split prefers explicit newlines over sentence tokenization, matching
// how dictated lists usually arrive.
func (e *LocalExtractor) split(text string) []string {
	if strings.Contains(text, "\n") {
		return strings.Split(text, "\n")
	}
	sents := e.tokenizer.Tokenize(text)
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		out = append(out, s.Text)
	}
	return out
}
