package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"taskpilot/internal/domain"
)

// DefaultEndpoint is the hosted inference endpoint of the model the
// transformers "sentiment-analysis" pipeline loads by default.
const DefaultEndpoint = "https://api-inference.huggingface.co/models/distilbert-base-uncased-finetuned-sst-2-english"

const maxErrorBody = 4 << 10

type Config struct {
	Endpoint   string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logrus.Logger
}

// HuggingFaceClient calls a text-classification model over the Hugging Face
// inference HTTP API. It is safe for concurrent use and is meant to be
// created once and shared.
type HuggingFaceClient struct {
	endpoint string
	token    string
	timeout  time.Duration
	client   *http.Client
	logger   *logrus.Logger
}

func NewHuggingFaceClient(cfg Config) (*HuggingFaceClient, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("sentiment endpoint is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &HuggingFaceClient{
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
		timeout:  cfg.Timeout,
		client:   cfg.HTTPClient,
		logger:   cfg.Logger,
	}, nil
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

func (c *HuggingFaceClient) Analyze(ctx context.Context, text string) ([]Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("encode sentiment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build sentiment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: sentiment request: %w", domain.ErrDependency, err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"latency": time.Since(start),
	}).Debug("sentiment model responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: sentiment model returned %d: %s",
			domain.ErrDependency, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read sentiment response: %w", domain.ErrDependency, err)
	}

	results, err := decodeResults(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDependency, err)
	}
	return results, nil
}

// decodeResults accepts the flat [{label, score}] shape and the nested
// [[{label, score}, ...]] shape the inference API returns when it scores
// every label. Nested lists are reduced to their best scoring label, which is
// what the pipeline reports.
func decodeResults(body []byte) ([]Result, error) {
	var nested [][]Result
	if err := json.Unmarshal(body, &nested); err == nil {
		results := make([]Result, 0, len(nested))
		for _, candidates := range nested {
			if len(candidates) == 0 {
				continue
			}
			best := candidates[0]
			for _, candidate := range candidates[1:] {
				if candidate.Score > best.Score {
					best = candidate
				}
			}
			results = append(results, best)
		}
		if len(results) == 0 {
			return nil, errors.New("sentiment model returned no labels")
		}
		return results, nil
	}

	var flat []Result
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("decode sentiment response: %w", err)
	}
	if len(flat) == 0 {
		return nil, errors.New("sentiment model returned no labels")
	}
	for _, r := range flat {
		if r.Label == "" {
			return nil, errors.New("sentiment model returned a result without label")
		}
	}
	return flat, nil
}

var _ Analyzer = (*HuggingFaceClient)(nil)
