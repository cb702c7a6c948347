package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/common"
	"github.com/ternarybob/ordino/internal/models"
)

// ZeroShotClient calls a hosted zero-shot classification endpoint speaking
// the Hugging Face inference protocol. Without a token the client reports
// itself unavailable and the label classifier stays on its rule tables.
type ZeroShotClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     arbor.ILogger
}

// NewZeroShotClient creates a zero-shot inference client from configuration.
func NewZeroShotClient(config *common.Config, logger arbor.ILogger) *ZeroShotClient {
	return &ZeroShotClient{
		endpoint: config.ZeroShot.Endpoint,
		token:    config.ZeroShot.Token,
		httpClient: &http.Client{
			Timeout: config.ZeroShotTimeout(),
		},
		logger: logger,
	}
}

// Available reports whether the client is configured to make calls.
func (c *ZeroShotClient) Available() bool {
	return c.endpoint != "" && c.token != ""
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Classify scores every candidate label against the text (multi-label) and
// returns label/score pairs ranked by descending score.
func (c *ZeroShotClient) Classify(ctx context.Context, text string, labels []string) ([]models.LabelScore, error) {
	if !c.Available() {
		return nil, fmt.Errorf("zero-shot client is not configured")
	}

	body, err := json.Marshal(zeroShotRequest{
		Inputs: text,
		Parameters: zeroShotParameters{
			CandidateLabels: labels,
			MultiLabel:      true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode zero-shot request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zero-shot request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read zero-shot response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zero-shot endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed zeroShotResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode zero-shot response: %w", err)
	}
	if len(parsed.Labels) != len(parsed.Scores) || len(parsed.Labels) == 0 {
		return nil, fmt.Errorf("zero-shot response is malformed: %d labels, %d scores", len(parsed.Labels), len(parsed.Scores))
	}

	scores := make([]models.LabelScore, len(parsed.Labels))
	for i := range parsed.Labels {
		scores[i] = models.LabelScore{Label: parsed.Labels[i], Confidence: parsed.Scores[i]}
	}

	c.logger.Debug().
		Int("labels", len(scores)).
		Str("top_label", scores[0].Label).
		Msg("Zero-shot classification completed")

	return scores, nil
}
