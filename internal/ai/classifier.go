package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/communitypulse/backend/internal/config"
)

// ErrUnavailable is returned by a classifier that has no provider
// configured. Callers fall back to the heuristic.
var ErrUnavailable = errors.New("classifier unavailable")

// Assessment is the structured output of one risk analysis.
type Assessment struct {
	Labels      []string           `json:"labels"`
	Scores      map[string]float64 `json:"scores"`
	OverallRisk float64            `json:"overall_risk"`
	Raw         json.RawMessage    `json:"raw_response,omitempty"`
}

// Classifier scores content for policy violations. Implementations must
// return an error rather than a partial result; the Scorer degrades to
// the deterministic heuristic on any failure.
type Classifier interface {
	ClassifyText(ctx context.Context, text string) (*Assessment, error)
	ClassifyImage(ctx context.Context, imageURL string) (*Assessment, error)
	Configured() bool
}

// NewClassifier picks the classifier variant based on configuration.
func NewClassifier(cfg *config.Config) Classifier {
	if cfg.OpenAIAPIKey == "" {
		return Unavailable{}
	}
	return &OpenAIClassifier{
		apiURL:      cfg.OpenAIAPIURL,
		apiKey:      cfg.OpenAIAPIKey,
		model:       cfg.OpenAIModel,
		visionModel: cfg.OpenAIVisionModel,
		client:      &http.Client{Timeout: cfg.AITimeout},
	}
}

// Unavailable is the no-provider variant.
type Unavailable struct{}

func (Unavailable) ClassifyText(context.Context, string) (*Assessment, error) {
	return nil, ErrUnavailable
}

func (Unavailable) ClassifyImage(context.Context, string) (*Assessment, error) {
	return nil, ErrUnavailable
}

func (Unavailable) Configured() bool { return false }

// OpenAIClassifier calls an OpenAI-compatible chat completions endpoint.
type OpenAIClassifier struct {
	apiURL      string
	apiKey      string
	model       string
	visionModel string
	client      *http.Client
}

const textSystemPrompt = `You are a content moderation AI. Analyze the following text for harmful content and return a JSON response with:
- labels: array of detected issues (toxicity, hate_speech, harassment, spam, violence, sexual_content, self_harm)
- scores: object with confidence scores (0-1) for each category
- overall_risk: single risk score (0-1)

Be objective and consider context. Return only valid JSON.`

const imageSystemPrompt = `You are a content moderation AI for images. Analyze the image for harmful content and return JSON with:
- labels: array of detected issues (nudity, violence, hate_symbols, graphic_content, inappropriate)
- scores: confidence scores (0-1) for each category
- overall_risk: single risk score (0-1)

Return only valid JSON.`

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type imagePart struct {
	Type     string   `json:"type"`
	ImageURL imageURL `json:"image_url"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClassifier) Configured() bool { return true }

func (c *OpenAIClassifier) ClassifyText(ctx context.Context, text string) (*Assessment, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: textSystemPrompt},
			{Role: "user", Content: text},
		},
		Temperature: 0.1,
	}
	return c.complete(ctx, req)
}

func (c *OpenAIClassifier) ClassifyImage(ctx context.Context, url string) (*Assessment, error) {
	req := chatRequest{
		Model: c.visionModel,
		Messages: []chatMessage{
			{Role: "system", Content: imageSystemPrompt},
			{Role: "user", Content: []imagePart{{Type: "image_url", ImageURL: imageURL{URL: url}}}},
		},
		Temperature: 0.1,
		MaxTokens:   500,
	}
	return c.complete(ctx, req)
}

func (c *OpenAIClassifier) complete(ctx context.Context, reqBody chatRequest) (*Assessment, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var raw bytes.Buffer
	var chatResp chatResponse
	if err := json.NewDecoder(io.TeeReader(resp.Body, &raw)).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, errors.New("classifier returned no choices")
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) > 2 {
			content = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	var parsed struct {
		Labels      []string           `json:"labels"`
		Scores      map[string]float64 `json:"scores"`
		OverallRisk float64            `json:"overall_risk"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("parse classifier verdict: %w", err)
	}

	result := &Assessment{
		Labels:      parsed.Labels,
		Scores:      parsed.Scores,
		OverallRisk: clamp01(parsed.OverallRisk),
		Raw:         json.RawMessage(raw.Bytes()),
	}
	if result.Labels == nil {
		result.Labels = []string{}
	}
	if result.Scores == nil {
		result.Scores = map[string]float64{}
	}
	return result, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
