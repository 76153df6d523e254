// Package vision adapts the hosted multimodal model: it ships an image plus a
// fixed instruction prompt and pulls a structured class array out of the
// free-text reply.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/juriqh/masar-notes-buddy/config"
)

// schedulePrompt is the fixed instruction describing the JSON schema the
// model must answer with. The numeric day convention (1=Sunday) is asserted
// here and validated again at persistence time.
const schedulePrompt = `Analyze this King Saud University student schedule image and extract all class information.

Return a JSON array with this structure for each class:
[
  {
    "course_code": "1203",
    "course_name_arabic": "مهارات التعلم والتفكير والبحث",
    "course_name_english": "Learning Skills, Thinking, and Research",
    "day_number": 2,
    "start_time": "13:00",
    "end_time": "14:50",
    "building": "02",
    "floor": "2",
    "wing": "A",
    "room": "320",
    "instructor_name": "امل احمد عبدالله باصويل"
  }
]

Important notes:
- Day numbers: 1=Sunday, 2=Monday, 3=Tuesday, 4=Wednesday, 5=Thursday, 6=Friday, 7=Saturday
- Time format: "HH:MM" in 24-hour format
- Extract all classes from the schedule
- If you see multiple entries for the same course on different days, create separate entries
- Be precise with Arabic text extraction
- Only return valid JSON, no other text`

// ── Wire types for the generateContent endpoint ──

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Client talks to the hosted multimodal completion endpoint.
type Client struct {
	cfg    *config.GeminiConfig
	http   *http.Client
	logger *zap.Logger
}

// NewClient builds a vision client. The HTTP client carries an explicit
// timeout so a hung upstream call cannot block the event loop forever.
func NewClient(cfg *config.GeminiConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// ExtractSchedule sends the image with the fixed schedule prompt and parses
// the reply into class records. A reply with no JSON array yields
// ErrNoJSONArray, not a partial result.
func (c *Client) ExtractSchedule(ctx context.Context, image []byte, mimeType string) ([]ExtractedClassRecord, error) {
	text, err := c.generate(ctx, schedulePrompt, image, mimeType)
	if err != nil {
		return nil, err
	}

	records, err := ExtractJSONArray(text)
	if err != nil {
		c.logger.Warn("no JSON array in model reply", zap.String("reply_head", head(text, 200)))
		return nil, err
	}
	return records, nil
}

// Answer sends a plain text prompt and returns the model's free-text reply
// verbatim. Used by the assistant's fallback path.
func (c *Client) Answer(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, nil, "")
}

func (c *Client) generate(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	parts := []part{{Text: prompt}}
	if len(image) > 0 {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}})
	}

	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: parts}}})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call model endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("model endpoint returned %d: %s", resp.StatusCode, head(string(msg), 200))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode model response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model response carried no candidates")
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
