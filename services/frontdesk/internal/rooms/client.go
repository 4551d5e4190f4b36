package rooms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is where the rooms API listens unless configured otherwise.
const DefaultBaseURL = "http://localhost:8080/api"

// Endpoint paths as exposed by the rooms service.
const (
	listPath   = "consultarTiposHabitacion"
	createPath = "registrarTiposHabtitacion"
	updatePath = "actualizarTiposHabitacion"
)

var ErrUnexpectedStatus = errors.New("rooms service returned unexpected status")

// RoomType is a room category managed by the rooms service.
type RoomType struct {
	ID          TypeID  `json:"id,omitempty"`
	Name        string  `json:"nombre,omitempty"`
	Description string  `json:"descripcion,omitempty"`
	Capacity    int     `json:"capacidad,omitempty"`
	Price       float64 `json:"precio,omitempty"`
}

// TypeID accepts both numeric and string ids on the wire.
type TypeID string

func (id *TypeID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TypeID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid room type id %s: %w", data, err)
	}
	*id = TypeID(n.String())
	return nil
}

// Client talks to the rooms API.
type Client interface {
	ListRoomTypes(ctx context.Context) ([]RoomType, error)
	CreateRoomType(ctx context.Context, data RoomType) error
	UpdateRoomType(ctx context.Context, id string, data RoomType) error
}

// HTTPClient implements Client over JSON HTTP calls.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a rooms client rooted at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ListRoomTypes fetches every room type.
func (c *HTTPClient) ListRoomTypes(ctx context.Context) ([]RoomType, error) {
	resp, err := c.do(ctx, http.MethodGet, listPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var types []RoomType
	if err := json.NewDecoder(resp.Body).Decode(&types); err != nil {
		return nil, fmt.Errorf("failed to decode room types: %w", err)
	}

	return types, nil
}

// CreateRoomType registers a new room type.
func (c *HTTPClient) CreateRoomType(ctx context.Context, data RoomType) error {
	resp, err := c.do(ctx, http.MethodPost, createPath, data)
	if err != nil {
		return err
	}
	return drain(resp)
}

// UpdateRoomType replaces the room type with id.
func (c *HTTPClient) UpdateRoomType(ctx context.Context, id string, data RoomType) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("room type id is required")
	}

	resp, err := c.do(ctx, http.MethodPut, updatePath+"/"+url.PathEscape(id), data)
	if err != nil {
		return err
	}
	return drain(resp)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + "/" + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rooms service request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s %s: %d", ErrUnexpectedStatus, method, path, resp.StatusCode)
	}

	return resp, nil
}

func drain(resp *http.Response) error {
	defer resp.Body.Close()
	_, err := io.Copy(io.Discard, resp.Body)
	return err
}

// NoopClient is used when the rooms service is disabled.
type NoopClient struct{}

// NewNoopClient creates a client that knows no room types.
func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

func (c *NoopClient) ListRoomTypes(ctx context.Context) ([]RoomType, error) {
	return []RoomType{}, nil
}

func (c *NoopClient) CreateRoomType(ctx context.Context, data RoomType) error {
	return nil
}

func (c *NoopClient) UpdateRoomType(ctx context.Context, id string, data RoomType) error {
	return nil
}

// Suggester adapts a Client to the labels offered by reservation forms.
type Suggester struct {
	client Client
}

func NewSuggester(client Client) *Suggester {
	return &Suggester{client: client}
}

func (s *Suggester) RoomSuggestions(ctx context.Context) ([]string, error) {
	if s == nil || s.client == nil {
		return nil, nil
	}

	types, err := s.client.ListRoomTypes(ctx)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(types))
	for _, t := range types {
		if name := strings.TrimSpace(t.Name); name != "" {
			labels = append(labels, name)
		}
	}
	return labels, nil
}
