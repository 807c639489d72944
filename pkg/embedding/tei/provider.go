// Package tei implements EmbeddingProvider against a hosted
// text-embeddings-inference endpoint ({"inputs": [...]} -> [[float]]).
package tei

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"rag-chat-be/pkg/embedding"
)

type TEIProvider struct {
	apiKey  string
	baseURL string
}

type embedRequest struct {
	Inputs []string `json:"inputs"`
}

func NewTEIProvider(baseURL, apiKey string) *TEIProvider {
	return &TEIProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (p *TEIProvider) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	reqBody := embedRequest{Inputs: []string{text}}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", p.baseURL+"/embed", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tei api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var vectors [][]float32
	if err := json.Unmarshal(bodyBytes, &vectors); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("empty embedding from tei api")
	}

	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{
			Values: embedding.NormalizeVector(vectors[0]),
		},
	}, nil
}
