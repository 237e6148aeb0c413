package media

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mediaerrors "hms/internal/media/errors"
	"hms/pkg/client"
	"hms/pkg/config"
	"hms/pkg/logger"
	"hms/pkg/sanitizer"

	"github.com/sony/gobreaker"
)

const (
	captionTimeout = 30 * time.Second
	maxAltText     = 125
	maxCaption     = 300
)

type Caption struct {
	Caption string `json:"caption"`
	AltText string `json:"alt_text"`
}

type Captioner interface {
	// Caption describes an image. subject names what the photo is of, e.g.
	// "gallery" or a room type name.
	Caption(ctx context.Context, data []byte, contentType, subject string) (*Caption, error)
}

type GeminiCaptioner struct {
	http    *client.HttpClient
	apiKey  string
	model   string
	breaker *gobreaker.CircuitBreaker
}

func NewGeminiCaptioner(cfg *config.Config, log *logger.Logger) *GeminiCaptioner {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 1,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &GeminiCaptioner{
		http:    client.NewHttpClient(strings.TrimSuffix(cfg.GeminiBaseURL, "/"), captionTimeout),
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		breaker: breaker,
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
	GenerationConfig map[string]any `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func captionPrompt(subject string) string {
	return fmt.Sprintf(`You write captions for Spencer Green Hotel, a hotel in Batu, East Java, Indonesia.
Describe this %s photo. Reply with JSON only: {"caption": "...", "alt_text": "..."}.
The caption is one or two inviting sentences. The alt text is SEO friendly and under %d characters.`, subject, maxAltText)
}

func (g *GeminiCaptioner) Caption(ctx context.Context, data []byte, contentType, subject string) (*Caption, error) {
	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.generate(ctx, data, contentType, subject)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Caption), nil
}

func (g *GeminiCaptioner) generate(ctx context.Context, data []byte, contentType, subject string) (*Caption, error) {
	var req geminiRequest
	req.Contents = append(req.Contents, struct {
		Parts []geminiPart `json:"parts"`
	}{Parts: []geminiPart{
		{Text: captionPrompt(subject)},
		{InlineData: &geminiInlineData{MimeType: contentType, Data: base64.StdEncoding.EncodeToString(data)}},
	}})
	req.GenerationConfig = map[string]any{
		"temperature":      0.4,
		"maxOutputTokens":  512,
		"responseMimeType": "application/json",
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent", g.model)
	resp, err := g.http.POSTWithHeaders(ctx, path, req, map[string]string{"x-goog-api-key": g.apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to call gemini: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, sanitizer.Truncate(string(resp.Body), 200))
	}

	var body geminiResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if len(body.Candidates) == 0 || len(body.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("empty gemini response")
	}

	return parseCaption(body.Candidates[0].Content.Parts[0].Text)
}

// parseCaption reads the model's JSON answer, tolerating a markdown code
// fence around it.
func parseCaption(text string) (*Caption, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var caption Caption
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &caption); err != nil {
		return nil, fmt.Errorf("gemini returned non-json caption: %w", err)
	}

	caption.Caption = sanitizer.FreeText(caption.Caption, maxCaption)
	caption.AltText = sanitizer.Truncate(sanitizer.TrimAndNormalize(caption.AltText), maxAltText)
	if caption.Caption == "" && caption.AltText == "" {
		return nil, errors.New("gemini returned an empty caption")
	}
	return &caption, nil
}

// NopCaptioner is used when no API key is configured.
type NopCaptioner struct{}

func (NopCaptioner) Caption(context.Context, []byte, string, string) (*Caption, error) {
	return nil, mediaerrors.ErrCaptionUnavailable
}

func NewCaptioner(cfg *config.Config) Captioner {
	if cfg.GeminiAPIKey == "" {
		return NopCaptioner{}
	}
	return NewGeminiCaptioner(cfg, cfg.Log)
}
