package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to a project server over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the server at baseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	c := new(Client)
	c.baseURL = strings.TrimRight(baseURL, "/")
	c.http = httpClient
	if c.http == nil {
		c.http = http.DefaultClient
	}
	return c
}

func (c *Client) projectURL(name string) string {
	return c.baseURL + "/projects/" + url.PathEscape(name)
}

func (c *Client) do(ctx context.Context, method, target string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusBadRequest {
		return nil, ErrInvalidName
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s: %s", method, target, resp.Status)
	}
	return data, nil
}

// Load implements Service.
func (c *Client) Load(ctx context.Context, name string) ([]byte, error) {
	if !ValidName(name) {
		return nil, ErrInvalidName
	}
	data, err := c.do(ctx, http.MethodGet, c.projectURL(name), nil)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

// Save implements Service.
func (c *Client) Save(ctx context.Context, name string, data []byte) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	_, err := c.do(ctx, http.MethodPut, c.projectURL(name), data)
	return err
}

// List implements Service.
func (c *Client) List(ctx context.Context) ([]string, error) {
	data, err := c.do(ctx, http.MethodGet, c.baseURL+"/projects", nil)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("decoding project list: %w", err)
	}
	return names, nil
}
