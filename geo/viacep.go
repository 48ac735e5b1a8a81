package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

const viaCEPBaseURL = "https://viacep.com.br/ws"

var cepPattern = regexp.MustCompile(`^\d{8}$`)

// Address is the result of a postal-code lookup.
type Address struct {
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// CEPLookup resolves a Brazilian postal code into an address. A failed
// lookup degrades gracefully: callers leave the address fields blank for
// manual entry rather than blocking checkout.
type CEPLookup interface {
	Lookup(ctx context.Context, cep string) (Address, error)
}

// ViaCEPClient implements CEPLookup using the ViaCEP API.
type ViaCEPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewViaCEPClient creates a new ViaCEPClient.
func NewViaCEPClient() *ViaCEPClient {
	return &ViaCEPClient{
		baseURL: viaCEPBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type viaCEPResponse struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// Lookup fetches the address for an 8-digit CEP.
func (c *ViaCEPClient) Lookup(ctx context.Context, cep string) (Address, error) {
	if !cepPattern.MatchString(cep) {
		return Address{}, fmt.Errorf("invalid CEP %q", cep)
	}

	url := fmt.Sprintf("%s/%s/json/", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Address{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Address{}, fmt.Errorf("viacep request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("viacep error: %s", resp.Status)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Address{}, fmt.Errorf("failed to decode viacep response: %w", err)
	}
	if body.Erro {
		return Address{}, fmt.Errorf("CEP %s not found", cep)
	}

	return Address{
		Street:       body.Logradouro,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
	}, nil
}
