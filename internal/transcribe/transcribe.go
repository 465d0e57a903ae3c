// Package transcribe converts recorded audio into text for the note
// pipeline. Providers are tried in order; unlike extraction there is no
// safe default transcript, so an exhausted chain errors.
package transcribe

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

// Transcriber converts one audio file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
	Name() string
}

var errNoProviders = errors.New("no transcription providers configured")

// Chain tries each provider once, in order, first success wins.
type Chain struct {
	providers []Transcriber
}

func NewChain(providers ...Transcriber) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Transcribe(ctx context.Context, audioPath string) (string, error) {
	var lastErr error = errNoProviders
	for _, p := range c.providers {
		text, err := p.Transcribe(ctx, audioPath)
		if err != nil {
			log.Warnf("Transcription via %s failed, trying next provider: %v", p.Name(), err)
			lastErr = err
			continue
		}
		return text, nil
	}
	return "", lastErr
}
