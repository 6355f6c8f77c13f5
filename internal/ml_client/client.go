package ml_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bullyguard/internal/models"
)

// Client is a client for the model service API, which hosts the pretrained
// transformer and exposes fine-tuning and prediction over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	fitClient  *http.Client
}

// FitRequest carries the split corpus and hyperparameters for a fine-tuning
// run.
type FitRequest struct {
	Train     []models.Sample `json:"train"`
	Test      []models.Sample `json:"test"`
	Epochs    int             `json:"epochs"`
	BatchSize int             `json:"batch_size"`
	LearnRate float64         `json:"learning_rate"`
	MaxLength int             `json:"max_length"`
}

// FitResponse is the outcome of a completed fine-tuning run.
type FitResponse struct {
	ModelID  string  `json:"model_id"`
	Accuracy float64 `json:"accuracy"`
	F1       float64 `json:"f1"`
}

// PredictRequest asks for a single-message classification.
type PredictRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id,omitempty"`
}

// Prediction is the raw model output: the predicted class label and its
// probability in [0, 1].
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Device      string `json:"device"`
}

// NewClient creates a new model service client. Fit requests use a separate
// long timeout because fine-tuning blocks until the run completes.
func NewClient(baseURL string, fitTimeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		fitClient: &http.Client{
			Timeout: fitTimeout,
		},
	}
}

// Fit runs a fine-tuning pass over the supplied split and returns the fitted
// model handle with its evaluation metrics.
func (c *Client) Fit(ctx context.Context, fitReq FitRequest) (*FitResponse, error) {
	jsonData, err := json.Marshal(fitReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/v1/model/fit", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.fitClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("model service returned status %d: %s", resp.StatusCode, string(body))
	}

	var result FitResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// Predict classifies a single message with the fitted model.
func (c *Client) Predict(ctx context.Context, text, modelID string) (*Prediction, error) {
	reqBody := PredictRequest{
		Text:    text,
		ModelID: modelID,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/v1/model/predict", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("model service returned status %d: %s", resp.StatusCode, string(body))
	}

	var result Prediction
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// HealthCheck checks whether the model service is up and has a model loaded.
func (c *Client) HealthCheck(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/v1/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("model service returned status %d: %s", resp.StatusCode, string(body))
	}

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
