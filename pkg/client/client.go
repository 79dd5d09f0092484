// Package client talks to the prompt vault HTTP API. Every authenticated
// method takes the bearer token explicitly; callers keep it in a Session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiPrefix = "/api/v1"

// Client is an HTTP client for the prompt vault API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client. A zero timeout falls back to two
// minutes, long enough for generation and uploads.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	var res AuthResult
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	var res AuthResult
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout revokes token on the server.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

func (c *Client) CurrentUser(ctx context.Context, token string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/auth/user", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Generate rewrites prompt for targetModel. It needs no session.
func (c *Client) Generate(ctx context.Context, prompt, targetModel string) (string, error) {
	var res struct {
		GeneratedPrompt string `json:"generatedPrompt"`
	}
	body := map[string]string{"prompt": prompt, "targetModel": targetModel}
	if err := c.do(ctx, http.MethodPost, "/prompts/generate", "", body, &res); err != nil {
		return "", err
	}
	return res.GeneratedPrompt, nil
}

func (c *Client) SavePrompt(ctx context.Context, token string, req SaveRequest) (*SaveResult, error) {
	var res SaveResult
	if err := c.do(ctx, http.MethodPost, "/prompts/save", token, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreatePrompt stores a manually written prompt through the same write path
// as SavePrompt.
func (c *Client) CreatePrompt(ctx context.Context, token string, req CreateRequest) (*SaveResult, error) {
	var res SaveResult
	body := SaveRequest{
		OriginalPrompt:  req.Title,
		GeneratedPrompt: req.Content,
		TargetModel:     req.Category,
		Tags:            req.Tags,
		Starred:         req.Starred,
	}
	if err := c.do(ctx, http.MethodPost, "/prompts", token, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListPrompts(ctx context.Context, token string, filter ListFilter) (*PromptList, error) {
	var res PromptList
	if err := c.do(ctx, http.MethodPost, "/prompts/list", token, filter, &res); err != nil {
		return nil, err
	}
	if res.Prompts == nil {
		res.Prompts = []Prompt{}
	}
	return &res, nil
}

func (c *Client) GetPrompt(ctx context.Context, token, id string) (*Prompt, error) {
	var p Prompt
	if err := c.do(ctx, http.MethodGet, "/prompts/"+url.PathEscape(id), token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ToggleStar flips the starred flag and returns the updated prompt.
func (c *Client) ToggleStar(ctx context.Context, token, id string) (*Prompt, error) {
	var p Prompt
	if err := c.do(ctx, http.MethodPost, "/prompts/"+url.PathEscape(id)+"/star", token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// RecordUsage increments the usage count and returns the updated prompt.
func (c *Client) RecordUsage(ctx context.Context, token, id string) (*Prompt, error) {
	var p Prompt
	if err := c.do(ctx, http.MethodPost, "/prompts/"+url.PathEscape(id)+"/use", token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UploadOutput attaches the contents of r as the output file of promptID and
// returns its public URL.
func (c *Client) UploadOutput(ctx context.Context, token, promptID, filename, contentType string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("promptId", promptID); err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)),
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header["Content-Type"] = []string{contentType}

	part, err := w.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPrefix+"/prompts/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var res uploadResult
	if err := handleResponse(resp, &res); err != nil {
		return "", err
	}
	return res.OutputURL, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return handleResponse(resp, result)
}

// handleResponse decodes a success body into result, or turns the server's
// {error} body into an *APIError.
func handleResponse(resp *http.Response, result any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
		}
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
		} else {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return apiErr
	}

	if result == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
