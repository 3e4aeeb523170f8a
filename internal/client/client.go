// Package client is the data service consumed by the storefront UI. Reads
// are fail-open: any transport error or non-2xx status is logged and turned
// into an empty collection, so callers never branch on error versus
// empty-but-successful. Mutations surface the server's message.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/israil64/laptop-galaxy/internal/models"
)

type Client struct {
	baseURL string
	hc      *http.Client
}

func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, hc: &http.Client{}}
}

// FetchInventory returns the full laptop collection, or an empty slice when
// the backend is unreachable.
func (c *Client) FetchInventory(ctx context.Context) []models.Laptop {
	var laptops []models.Laptop
	if err := c.getJSON(ctx, "/api/laptops", &laptops); err != nil {
		slog.Error("Error loading inventory", "error", err)
		return []models.Laptop{}
	}
	if laptops == nil {
		laptops = []models.Laptop{}
	}
	return laptops
}

// FetchReviews returns the full review collection, or an empty slice when the
// backend is unreachable.
func (c *Client) FetchReviews(ctx context.Context) []models.Review {
	var reviews []models.Review
	if err := c.getJSON(ctx, "/api/reviews", &reviews); err != nil {
		slog.Error("Error loading reviews", "error", err)
		return []models.Review{}
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews
}

// Signup registers a new account and returns the server's message.
func (c *Client) Signup(ctx context.Context, username, email, password string) (string, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.postJSON(ctx, "/api/signup", body, &resp); err != nil {
		return resp.Message, err
	}
	return resp.Message, nil
}

// Login verifies credentials and returns the sanitized profile on success;
// on failure the error carries the server-provided message.
func (c *Client) Login(ctx context.Context, email, password string) (*models.PublicUser, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Message string             `json:"message"`
		User    *models.PublicUser `json:"user"`
	}
	if err := c.postJSON(ctx, "/api/login", body, &resp); err != nil {
		if resp.Message != "" {
			return nil, errors.New(resp.Message)
		}
		return nil, err
	}
	return resp.User, nil
}

// SubmitReview sends a testimonial; the server forces it into the moderation
// queue regardless of what approved value is sent.
func (c *Client) SubmitReview(ctx context.Context, review models.Review) error {
	return c.postJSON(ctx, "/api/reviews", review, nil)
}

// SubmitContact sends a contact form message.
func (c *Client) SubmitContact(ctx context.Context, msg models.Message) error {
	return c.postJSON(ctx, "/api/contact", msg, nil)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// postJSON sends a JSON body and decodes the response into out when given.
// Non-2xx responses still decode out (the message body) before erroring.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out != nil {
		// Best effort: error bodies carry the message field too.
		json.NewDecoder(resp.Body).Decode(out)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}
