// Package tgi talks to a text-generation-inference style endpoint: a single
// JSON envelope carrying the prompt plus generation parameters. This is the
// same request shape hosted model endpoints (SageMaker, HF Inference) expose.
package tgi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rag-chat-be/pkg/llm"
)

type TGIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ llm.LLMProvider = &TGIProvider{}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens int     `json:"max_new_tokens,omitempty"`
	TopP         float64 `json:"top_p,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
	Error         string `json:"error,omitempty"`
}

func NewTGIProvider(baseURL, apiKey string) *TGIProvider {
	return &TGIProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (p *TGIProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	opts := &llm.Options{
		MaxTokens:   1024,
		TopP:        0.9,
		Temperature: 0.1,
	}
	for _, o := range options {
		o(opts)
	}

	reqBody := generateRequest{
		Inputs: prompt,
		Parameters: generateParameters{
			MaxNewTokens: opts.MaxTokens,
			TopP:         opts.TopP,
			Temperature:  opts.Temperature,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := p.baseURL + "/generate"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tgi api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var genResp generateResponse
	if err := json.Unmarshal(bodyBytes, &genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if genResp.Error != "" {
		return "", fmt.Errorf("tgi api returned error: %s", genResp.Error)
	}

	return genResp.GeneratedText, nil
}

func (p *TGIProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	// TGI takes a flat prompt; fold the history into User/Assistant markers.
	var b strings.Builder
	for _, msg := range history {
		switch msg.Role {
		case "assistant", "model":
			b.WriteString("\n\nAssistant: ")
		case "system":
			b.WriteString("\n\nSystem: ")
		default:
			b.WriteString("\n\nUser: ")
		}
		b.WriteString(msg.Content)
	}
	b.WriteString("\n\nAssistant:")
	return p.Generate(ctx, b.String(), options...)
}
