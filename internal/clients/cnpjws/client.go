package cnpjws

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

// Client queries the public corporate registry for a CNPJ, returning the
// legal name and registered address used to pre-fill company forms.
type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(cfg config.Lookup) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryAttempts
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.Logger = nil

	return &Client{
		http:    retryClient.StandardClient(),
		baseURL: strings.TrimRight(cfg.CNPJBaseURL, "/"),
	}
}

type RegistryEntry struct {
	LegalName string
	TradeName string
	Address   entity.Address
}

type cnpjResponse struct {
	RazaoSocial     string `json:"razao_social"`
	Estabelecimento struct {
		NomeFantasia string `json:"nome_fantasia"`
		Logradouro   string `json:"logradouro"`
		Numero       string `json:"numero"`
		Complemento  string `json:"complemento"`
		Bairro       string `json:"bairro"`
		CEP          string `json:"cep"`
		Cidade       struct {
			Nome string `json:"nome"`
		} `json:"cidade"`
		Estado struct {
			Sigla string `json:"sigla"`
		} `json:"estado"`
	} `json:"estabelecimento"`
}

func (c *Client) Lookup(ctx context.Context, cnpj string) (RegistryEntry, error) {
	reqURL := fmt.Sprintf("%s/cnpj/%s", c.baseURL, cnpj)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return RegistryEntry{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return RegistryEntry{}, fmt.Errorf("%w: %s", entity.ErrLookupUnavailable, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return RegistryEntry{}, entity.ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return RegistryEntry{}, fmt.Errorf("%w: unexpected status code: %d, body: %s", entity.ErrLookupUnavailable, resp.StatusCode, body)
	}

	var data cnpjResponse

	err = json.NewDecoder(resp.Body).Decode(&data)
	if err != nil {
		return RegistryEntry{}, fmt.Errorf("decode response: %w", err)
	}

	return RegistryEntry{
		LegalName: data.RazaoSocial,
		TradeName: data.Estabelecimento.NomeFantasia,
		Address: entity.Address{
			Street:     data.Estabelecimento.Logradouro,
			Number:     data.Estabelecimento.Numero,
			Complement: data.Estabelecimento.Complemento,
			District:   data.Estabelecimento.Bairro,
			City:       data.Estabelecimento.Cidade.Nome,
			State:      data.Estabelecimento.Estado.Sigla,
			CEP:        data.Estabelecimento.CEP,
		},
	}, nil
}
