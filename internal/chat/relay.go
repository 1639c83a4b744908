// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package chat relays visitor questions to an OpenAI chat model and
// renders the answers as sanitized HTML.
package chat

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/yuin/goldmark"

	"github.com/olegiv/pvquote-go/internal/config"
)

// systemPrompt frames every relayed question.
const systemPrompt = "You are a helpful solar-energy expert. Answer questions " +
	"about photovoltaic systems, their installation and their economics " +
	"concisely and accurately."

// Relay asks an OpenAI chat model visitor questions one at a time.
// It keeps no conversation history.
type Relay struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// New creates a relay from the chat section of the configuration.
// Extra request options are appended after the API key, which lets
// tests point the client at a local server.
func New(cfg *config.Config, opts ...option.RequestOption) *Relay {
	clientOpts := append([]option.RequestOption{option.WithAPIKey(cfg.OpenAIAPIKey)}, opts...)
	return &Relay{
		client:  openai.NewClient(clientOpts...),
		model:   cfg.OpenAIModel,
		timeout: cfg.ChatTimeout,
	}
}

// Ask sends a single question and returns the model's answer with
// surrounding whitespace trimmed.
func (r *Relay) Ask(ctx context.Context, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: r.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(question),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

var (
	markdown = goldmark.New()
	policy   = bluemonday.UGCPolicy()
)

// RenderAnswer converts a model answer from Markdown to sanitized HTML
// safe to embed in a page.
func RenderAnswer(answer string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(answer), &buf); err != nil {
		return "", fmt.Errorf("rendering chat answer: %w", err)
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}
