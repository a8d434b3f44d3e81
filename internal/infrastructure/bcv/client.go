// Package bcv obtiene la tasa oficial USD/Bs desde un servicio externo y la
// mantiene fresca en la configuración de la tienda.
package bcv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Client consulta el endpoint público de tasa oficial. La respuesta esperada
// es un JSON con el campo "promedio" en Bs por USD.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient construye el cliente con la URL del servicio de tasas.
func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type rateResponse struct {
	Promedio decimal.Decimal `json:"promedio"`
}

// FetchRate obtiene la tasa oficial vigente.
func (c *Client) FetchRate(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bcv: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bcv: servicio inalcanzable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("bcv: el servicio respondió %d", resp.StatusCode)
	}

	var result rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return decimal.Zero, fmt.Errorf("bcv: decode response: %w", err)
	}
	if !result.Promedio.IsPositive() {
		return decimal.Zero, fmt.Errorf("bcv: tasa no positiva: %s", result.Promedio)
	}
	return result.Promedio, nil
}
