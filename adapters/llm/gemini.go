package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"qsolve/internal/errors"
	"qsolve/ports"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Config holds Gemini adapter configuration
type Config struct {
	APIKey      string        // Gemini API key; empty means not configured
	Model       string        // e.g. "gemini-1.5-flash"
	BaseURL     string        // Optional override (default: generativelanguage.googleapis.com)
	Temperature float64       // 0.0-1.0, lower = more deterministic
	MaxTokens   int           // Max tokens in response
	Timeout     time.Duration // Request timeout
}

var _ ports.SolutionGenerator = (*GeminiGenerator)(nil)

// GeminiGenerator implements SolutionGenerator against the Gemini
// generateContent REST API. One upstream call per invocation, no retries.
type GeminiGenerator struct {
	config     Config
	httpClient *http.Client
}

// NewGeminiGenerator creates a Gemini-backed solution generator.
func NewGeminiGenerator(config Config) *GeminiGenerator {
	if config.MaxTokens <= 0 {
		config.MaxTokens = 8192
	}
	return &GeminiGenerator{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Generate sends the question text, wrapped in the tutor prompt, to the
// model and returns the full markdown response.
func (g *GeminiGenerator) Generate(ctx context.Context, questions string) (ports.Solution, error) {
	if g.config.APIKey == "" {
		return ports.Solution{}, errors.New(errors.CodeNotConfigured, "Gemini API key not configured")
	}

	// generateContent request shape (single-turn, no streaming)
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Parts []part `json:"parts"`
	}
	type generationConfig struct {
		Temperature     float64 `json:"temperature,omitempty"`
		MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	}
	type reqBody struct {
		Contents         []content         `json:"contents"`
		GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
	}

	body := reqBody{
		Contents: []content{{Parts: []part{{Text: solutionPrompt(questions)}}}},
		GenerationConfig: &generationConfig{
			Temperature:     g.config.Temperature,
			MaxOutputTokens: g.config.MaxTokens,
		},
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return ports.Solution{}, errors.Wrap(err, "failed to marshal request")
	}

	baseURL := strings.TrimSpace(g.config.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(baseURL, "/"), g.config.Model)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return ports.Solution{}, errors.Wrap(err, "failed to build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.config.APIKey)

	log.Debug().Str("model", g.config.Model).Int("promptLength", len(questions)).Msg("llm: sending generateContent request")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return ports.Solution{}, errors.WithCode(err, errors.CodeUpstream, "Gemini request failed")
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.Solution{}, errors.WithCode(err, errors.CodeUpstream, "failed to read Gemini response")
	}
	if resp.StatusCode != http.StatusOK {
		return ports.Solution{}, errors.Newf(errors.CodeUpstream, "Gemini API error (status %d): %s", resp.StatusCode, truncate(string(respRaw), 500))
	}

	// generateContent response envelope
	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respRaw, &parsed); err != nil {
		return ports.Solution{}, errors.WithCode(err, errors.CodeUpstream, "failed to parse Gemini response")
	}

	var sb strings.Builder
	if len(parsed.Candidates) > 0 {
		for _, p := range parsed.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return ports.Solution{}, errors.New(errors.CodeUpstream, "Gemini AI returned empty response")
	}

	log.Debug().Str("model", g.config.Model).Int("responseLength", len(text)).Msg("llm: response received")
	return ports.Solution{Text: text, Model: g.config.Model}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
