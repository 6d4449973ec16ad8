package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"jokebox/internal/config"
	"jokebox/internal/models"
)

// Fetcher fetches one random joke. Implemented by *Client; the session
// depends on this interface so tests can substitute a fake.
type Fetcher interface {
	FetchJoke(ctx context.Context) (models.Joke, error)
}

var _ Fetcher = (*Client)(nil)

// Client talks to the public joke endpoint.
type Client struct {
	cfg  config.ClientConfig
	http *http.Client
}

func New(cfg config.ClientConfig, opts ...Option) *Client {
	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

// FetchJoke issues one GET to the endpoint and decodes the body as a Joke.
// Any transport, status, or decode failure is returned as an error; callers
// keep whatever joke they were already displaying.
func (c *Client) FetchJoke(ctx context.Context) (models.Joke, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint, nil)
	if err != nil {
		return models.Joke{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Joke{}, fmt.Errorf("fetch joke: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Joke{}, fmt.Errorf("joke endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Joke{}, fmt.Errorf("read body: %w", err)
	}

	joke, err := models.DecodeJoke(body)
	if err != nil {
		return models.Joke{}, err
	}

	return joke, nil
}
