package schemaregistry

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

const registryMediaType = "application/vnd.schemaregistry.v1+json"

// ErrInvalidWireFormat is returned when a message does not start with the magic byte and schema ID.
var ErrInvalidWireFormat = errors.New("schemaregistry: invalid wire format")

// Client talks to a Confluent-compatible schema registry. Registered IDs and
// fetched schemas are cached for the lifetime of the client.
type Client struct {
	url        string
	username   string
	password   string
	httpClient *http.Client

	mu      sync.RWMutex
	schemas map[int]string
	ids     map[string]int
}

// NewClient validates the configuration. No request is made until first use.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("schemaregistry: URL is required")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("schemaregistry: invalid URL: %w", err)
	}
	return &Client{
		url:        strings.TrimRight(cfg.URL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		schemas:    make(map[int]string),
		ids:        make(map[string]int),
	}, nil
}

// RegisterSchema registers an Avro schema under subject and returns its global ID.
// Registering an identical schema again returns the existing ID.
func (c *Client) RegisterSchema(ctx context.Context, subject, schema string) (int, error) {
	key := subject + "\x00" + schema
	c.mu.RLock()
	id, ok := c.ids[key]
	c.mu.RUnlock()
	if ok {
		return id, nil
	}

	body, err := json.Marshal(map[string]string{"schema": schema})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	var result struct {
		ID int `json:"id"`
	}
	path := "/subjects/" + url.PathEscape(subject) + "/versions"
	if err := c.do(ctx, http.MethodPost, path, body, &result); err != nil {
		return 0, fmt.Errorf("registering schema for %s: %w", subject, err)
	}

	c.mu.Lock()
	c.ids[key] = result.ID
	c.schemas[result.ID] = schema
	c.mu.Unlock()
	return result.ID, nil
}

// GetSchemaByID fetches the schema text for a global ID.
func (c *Client) GetSchemaByID(ctx context.Context, id int) (string, error) {
	c.mu.RLock()
	schema, ok := c.schemas[id]
	c.mu.RUnlock()
	if ok {
		return schema, nil
	}

	var result struct {
		Schema string `json:"schema"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/schemas/ids/%d", id), nil, &result); err != nil {
		return "", fmt.Errorf("fetching schema %d: %w", id, err)
	}

	c.mu.Lock()
	c.schemas[id] = result.Schema
	c.mu.Unlock()
	return result.Schema, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	req.Header.Set("Accept", registryMediaType)
	if body != nil {
		req.Header.Set("Content-Type", registryMediaType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("schema registry returned status %d: %s", resp.StatusCode, string(msg))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// EncodeSchemaID returns the five byte wire prefix: a zero magic byte and the big-endian ID.
func EncodeSchemaID(id int) []byte {
	buf := make([]byte, 5)
	binary.BigEndian.PutUint32(buf[1:], uint32(id))
	return buf
}

// DecodeSchemaID splits a message into its schema ID and payload.
func DecodeSchemaID(data []byte) (int, []byte, error) {
	if len(data) < 5 {
		return 0, nil, fmt.Errorf("%w: %d bytes", ErrInvalidWireFormat, len(data))
	}
	if data[0] != 0 {
		return 0, nil, fmt.Errorf("%w: magic byte 0x%x", ErrInvalidWireFormat, data[0])
	}
	return int(binary.BigEndian.Uint32(data[1:5])), data[5:], nil
}
