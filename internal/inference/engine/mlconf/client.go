// Package mlconf is the optional HTTP client for the external confidence
// model. The engine treats it as advisory: absence or failure never blocks
// graph-only inference.
package mlconf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/modbridge/modbridge-backend/internal/inference/engine"
	"github.com/modbridge/modbridge-backend/internal/platform/envutil"
	"github.com/modbridge/modbridge-backend/internal/platform/logger"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewFromEnv builds the client from ML_CONFIDENCE_URL. Unset means the
// deployment runs without ML refinement, returned as (nil, nil).
func NewFromEnv(log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("mlconf: logger required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("ML_CONFIDENCE_URL")), "/")
	if baseURL == "" {
		return nil, nil
	}
	timeout := time.Duration(envutil.Int("ML_CONFIDENCE_TIMEOUT_SECONDS", 5)) * time.Second
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.With("client", "MLConfidence"),
	}, nil
}

type predictRequest struct {
	SourceConcept      string  `json:"source_concept"`
	TargetConcept      string  `json:"target_concept"`
	TransformationType string  `json:"transformation_type"`
	Confidence         float64 `json:"confidence"`
	Platform           string  `json:"platform"`
	MinecraftVersion   string  `json:"minecraft_version"`
}

type predictResponse struct {
	Confidence float64 `json:"confidence"`
}

func (c *Client) PredictConfidence(ctx context.Context, p engine.PatternInput) (float64, error) {
	body, err := json.Marshal(predictRequest{
		SourceConcept:      p.SourceConcept,
		TargetConcept:      p.TargetConcept,
		TransformationType: p.TransformationType,
		Confidence:         p.Confidence,
		Platform:           p.Platform,
		MinecraftVersion:   p.MinecraftVersion,
	})
	if err != nil {
		return 0, fmt.Errorf("mlconf: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/confidence", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("mlconf: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("mlconf: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("mlconf: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("mlconf: decode response: %w", err)
	}
	if out.Confidence < 0 || out.Confidence > 1 {
		return 0, fmt.Errorf("mlconf: confidence %v outside [0,1]", out.Confidence)
	}
	return out.Confidence, nil
}
