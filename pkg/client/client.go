// Package client is a Go SDK for the notes HTTP API. Responses are normalized
// into display copies so callers never handle loosely shaped payloads.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	norm       normalizer

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.norm.log = log }
}

// WithClock replaces the time source used for missing or unparsable dates.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.norm.now = now }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New builds a client for baseURL, e.g. "http://localhost:3000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		norm:       normalizer{now: time.Now, log: zap.NewNop()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var eb errorBody
		if json.Unmarshal(payload, &eb) == nil && eb.Message != "" {
			apiErr.Message = eb.Message
			apiErr.Detail = eb.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var res struct {
		Message   string          `json:"message"`
		User      rawUser         `json:"user"`
		Token     string          `json:"token"`
		ExpiresAt json.RawMessage `json:"expiresAt"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &res)
	if err != nil {
		return nil, err
	}

	c.SetToken(res.Token)
	return &LoginResult{
		Message:   res.Message,
		User:      *c.norm.user(&res.User),
		Token:     res.Token,
		ExpiresAt: c.norm.date("expiresAt", res.ExpiresAt),
	}, nil
}

// Logout ends the server session. The local token is dropped even when the
// server call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetToken("")
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var res struct {
		User rawUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &res); err != nil {
		return nil, err
	}
	return c.norm.user(&res.User), nil
}

func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var raw []rawNote
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &raw); err != nil {
		return nil, err
	}
	notes := make([]Note, 0, len(raw))
	for _, r := range raw {
		notes = append(notes, c.norm.note(r))
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (*Note, error) {
	return c.noteCall(ctx, http.MethodGet, "/notes/"+url.PathEscape(id), nil)
}

func (c *Client) CreateNote(ctx context.Context, in NoteInput) (*Note, error) {
	body := noteBody(in)
	body["authorId"] = in.AuthorID
	return c.noteCall(ctx, http.MethodPost, "/notes", body)
}

func (c *Client) UpdateNote(ctx context.Context, id string, in NoteInput) (*Note, error) {
	return c.noteCall(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), noteBody(in))
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil)
}

func (c *Client) SetRating(ctx context.Context, id string, rating int) (*Note, error) {
	return c.noteCall(ctx, http.MethodPut, "/notes/"+url.PathEscape(id)+"/rating", map[string]int{"rating": rating})
}

func (c *Client) ListComments(ctx context.Context, noteID string) ([]Comment, error) {
	var raw []rawComment
	if err := c.do(ctx, http.MethodGet, "/notes/"+url.PathEscape(noteID)+"/comments", nil, &raw); err != nil {
		return nil, err
	}
	comments := make([]Comment, 0, len(raw))
	for _, r := range raw {
		comments = append(comments, c.norm.comment(r))
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, noteID string, in CommentInput) (*Comment, error) {
	var raw rawComment
	if err := c.do(ctx, http.MethodPost, "/notes/"+url.PathEscape(noteID)+"/comments", in, &raw); err != nil {
		return nil, err
	}
	comment := c.norm.comment(raw)
	return &comment, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var raw []json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &raw); err != nil {
		return nil, err
	}
	categories := make([]Category, 0, len(raw))
	for _, r := range raw {
		if category, ok := c.norm.category(r); ok {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (*Category, error) {
	return c.categoryCall(ctx, http.MethodPost, "/categories", name)
}

func (c *Client) RenameCategory(ctx context.Context, id, name string) (*Category, error) {
	return c.categoryCall(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), name)
}

func (c *Client) noteCall(ctx context.Context, method, path string, body any) (*Note, error) {
	var raw rawNote
	if err := c.do(ctx, method, path, body, &raw); err != nil {
		return nil, err
	}
	note := c.norm.note(raw)
	return &note, nil
}

func (c *Client) categoryCall(ctx context.Context, method, path, name string) (*Category, error) {
	var raw json.RawMessage
	if err := c.do(ctx, method, path, map[string]string{"name": name}, &raw); err != nil {
		return nil, err
	}
	category, ok := c.norm.category(raw)
	if !ok {
		return nil, fmt.Errorf("client: unexpected category payload")
	}
	return &category, nil
}

func noteBody(in NoteInput) map[string]any {
	body := map[string]any{
		"title":        in.Title,
		"content":      in.Content,
		"province":     in.Province,
		"categoryIds":  nonNil(in.CategoryIDs),
		"tags":         nonNil(in.Tags),
		"phoneNumbers": nonNil(in.PhoneNumbers),
	}
	if !in.EventDate.IsZero() {
		body["eventDate"] = in.EventDate.Format(time.RFC3339)
	}
	if in.IsArchived != nil {
		body["isArchived"] = *in.IsArchived
	}
	if in.IsPublished != nil {
		body["isPublished"] = *in.IsPublished
	}
	return body
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
