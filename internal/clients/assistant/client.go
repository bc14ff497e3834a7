package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gestaoplus/admin-gateway/internal/entity"
	"github.com/gestaoplus/admin-gateway/pkg/config"
	"github.com/gestaoplus/admin-gateway/pkg/transport"
)

// Client relays chat prompts to the external text-inference endpoint. The
// assistant is cosmetic; it never participates in the data path.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewClient(cfg config.Assistant) *Client {
	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport.NewLogRoundTripper(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
}

type generateRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Reply string `json:"reply"`
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	b, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s", entity.ErrLookupUnavailable, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code: %d, body: %s", entity.ErrLookupUnavailable, resp.StatusCode, body)
	}

	var data generateResponse

	err = json.NewDecoder(resp.Body).Decode(&data)
	if err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return data.Reply, nil
}
