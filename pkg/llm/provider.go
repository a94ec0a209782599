package llm

import (
	"context"
)

// Request is a provider-agnostic chat request. ImageB64, when set, carries
// a base64 transport encoding of the attached image.
type Request struct {
	Question string
	ImageB64 string
	MimeType string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature       float64
	MaxTokens         int
	Model             string // Override default model
	SystemInstruction string
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithSystemInstruction(instruction string) Option {
	return func(o *Options) {
		o.SystemInstruction = instruction
	}
}

// Provider defines the contract for any model backend.
type Provider interface {
	// Ask sends one request to the model and returns the reply text.
	Ask(ctx context.Context, req Request, options ...Option) (string, error)
}
