package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/gestaoplus/admin-gateway/internal/entity"
	"github.com/gestaoplus/admin-gateway/pkg/config"
)

const defaultRetryWaitMax = 2 * time.Second

// Client resolves a CEP to address fields through the public ViaCEP API.
// Used opportunistically to pre-fill forms; callers treat every failure as
// a non-fatal warning.
type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(cfg config.Lookup) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryAttempts
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.Logger = nil

	return &Client{
		http:    retryClient.StandardClient(),
		baseURL: strings.TrimRight(cfg.ViaCEPBaseURL, "/"),
	}
}

type cepResponse struct {
	CEP        string `json:"cep"`
	Street     string `json:"logradouro"`
	Complement string `json:"complemento"`
	District   string `json:"bairro"`
	City       string `json:"localidade"`
	State      string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// Lookup returns the address registered for a CEP. ViaCEP answers 200 with
// {"erro": true} for an unknown CEP, which maps to entity.ErrNotFound.
func (c *Client) Lookup(ctx context.Context, cep string) (entity.Address, error) {
	reqURL := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return entity.Address{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return entity.Address{}, fmt.Errorf("%w: %s", entity.ErrLookupUnavailable, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return entity.Address{}, fmt.Errorf("malformed cep %q: %w", cep, entity.ErrInvalidArgument)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return entity.Address{}, fmt.Errorf("%w: unexpected status code: %d, body: %s", entity.ErrLookupUnavailable, resp.StatusCode, body)
	}

	var data cepResponse

	err = json.NewDecoder(resp.Body).Decode(&data)
	if err != nil {
		return entity.Address{}, fmt.Errorf("decode response: %w", err)
	}

	if data.Erro {
		return entity.Address{}, entity.ErrNotFound
	}

	return entity.Address{
		Street:     data.Street,
		Complement: data.Complement,
		District:   data.District,
		City:       data.City,
		State:      data.State,
		CEP:        data.CEP,
	}, nil
}
