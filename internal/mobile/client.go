// Package mobile is the gateway client used by the porter's handheld app.
package mobile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services"
)

// ErrUnreachable means the gateway did not answer in time or the connection failed
var ErrUnreachable = errors.New("gateway unreachable")

// APIError is a failure envelope returned by the gateway
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway returned %d (%d): %s", e.Status, e.Code, e.Message)
}

// Unwrap maps gateway statuses onto the shared service errors so batch reports classify them
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusConflict:
		return services.ErrAlreadyDelivered
	case http.StatusNotFound:
		return services.ErrNotFound
	case http.StatusBadRequest:
		return services.ErrValidation
	case http.StatusServiceUnavailable:
		return services.ErrDatabase
	}
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Package is a package as the gateway reports it
type Package struct {
	ID              uint                  `json:"id"`
	MoradorID       uint                  `json:"morador_id"`
	Morador         string                `json:"morador"`
	Bloco           string                `json:"bloco"`
	Apartamento     string                `json:"apartamento"`
	Porteiro        string                `json:"porteiro"`
	DataRecebimento time.Time             `json:"data_recebimento"`
	Quantidade      int                   `json:"quantidade"`
	Observacoes     string                `json:"observacoes"`
	Status          models.ExternalStatus `json:"status"`
}

// Resident is a resident as the gateway reports it
type Resident struct {
	ID          uint   `json:"id"`
	Nome        string `json:"nome"`
	Bloco       string `json:"bloco"`
	Apartamento string `json:"apartamento"`
}

// Suggestion is a ranked resident name
type Suggestion struct {
	ID              uint   `json:"id"`
	Nome            string `json:"nome"`
	TotalEncomendas int64  `json:"total_encomendas"`
}

// User is a staff account as the gateway reports it
type User struct {
	ID     uint                      `json:"id"`
	Login  string                    `json:"login"`
	Nome   string                    `json:"nome"`
	Nivel  models.ExternalRole       `json:"nivel"`
	Status models.ExternalUserStatus `json:"status"`
}

// Status is the gateway health report
type Status struct {
	Servidor string `json:"servidor"`
	Database bool   `json:"database"`
}

// NewPackage is a package intake
type NewPackage struct {
	Morador     string    `json:"morador"`
	Rua         string    `json:"rua,omitempty"`
	Numero      string    `json:"numero,omitempty"`
	Bloco       string    `json:"bloco,omitempty"`
	Apartamento string    `json:"apartamento,omitempty"`
	PorteiroID  uint      `json:"porteiro_id"`
	Quantidade  int       `json:"quantidade"`
	Observacoes string    `json:"observacoes,omitempty"`
	RecebidaEm  time.Time `json:"-"`
}

// Created reports a new package id
type Created struct {
	ID            uint `json:"id"`
	MoradorID     uint `json:"morador_id"`
	MoradorCriado bool `json:"morador_criado"`
}

// Client talks to the desktop gateway over the LAN
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *zap.Logger
}

// NewClient creates a client for the paired gateway. Every request is bounded by timeout.
func NewClient(d models.PairingDescriptor, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL: d.BaseURL(),
		HTTP:    &http.Client{Timeout: timeout},
		Log:     log,
	}
}

// Status checks the gateway and its database
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var out Status
	if err := c.do(ctx, http.MethodGet, "/api/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPending lists packages waiting at the desk
func (c *Client) ListPending(ctx context.Context) ([]Package, error) {
	out := make([]Package, 0)
	if err := c.do(ctx, http.MethodGet, "/api/encomendas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePackage registers a package
func (c *Client) CreatePackage(ctx context.Context, p NewPackage) (*Created, error) {
	// sent as an absolute instant, the desktop may run in another zone
	body := struct {
		NewPackage
		DataRecebimento string `json:"data_recebimento,omitempty"`
	}{NewPackage: p}
	if !p.RecebidaEm.IsZero() {
		body.DataRecebimento = p.RecebidaEm.Format(time.RFC3339)
	}

	var out Created
	if err := c.do(ctx, http.MethodPost, "/api/encomendas", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Deliver delivers one package through the gateway
func (c *Client) Deliver(ctx context.Context, id uint, in services.DeliveryInput) error {
	body := map[string]interface{}{
		"porteiro_id":  in.DeliveredByID,
		"retirado_por": in.RetrievedBy,
		"observacoes":  in.Notes,
	}
	if !in.DeliveredAt.IsZero() {
		body["data_entrega"] = in.DeliveredAt.Format(time.RFC3339)
	}
	return c.do(ctx, http.MethodPut, "/api/encomendas/"+strconv.FormatUint(uint64(id), 10)+"/entregar", body, nil)
}

// ListUsers lists staff accounts; empty filters match everything
func (c *Client) ListUsers(ctx context.Context, nivel models.ExternalRole, status models.ExternalUserStatus) ([]User, error) {
	q := url.Values{}
	if nivel != "" {
		q.Set("nivel", string(nivel))
	}
	if status != "" {
		q.Set("status", string(status))
	}
	path := "/api/usuarios"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	out := make([]User, 0)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListResidents lists residents
func (c *Client) ListResidents(ctx context.Context) ([]Resident, error) {
	out := make([]Resident, 0)
	if err := c.do(ctx, http.MethodGet, "/api/moradores", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SuggestResidents returns ranked resident names for an autocomplete field
func (c *Client) SuggestResidents(ctx context.Context, query string) ([]Suggestion, error) {
	out := make([]Suggestion, 0)
	path := "/api/moradores/sugestoes?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Warn("gateway request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: unreadable response (%d): %v", ErrUnreachable, resp.StatusCode, err)
	}

	if resp.StatusCode >= 300 || !env.Success {
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
	}

	if dest != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}
