package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/americano/projectsync-web/internal/projects/domain"
)

const projectsPath = "/api/projects"

// Client talks to the projects REST backend.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a backend client. Every call is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the backend origin the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// errorBody is the best-effort shape of a backend error response.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// List fetches every project.
func (c *Client) List(ctx context.Context) ([]domain.Project, error) {
	var out []domain.Project
	if _, err := c.do(ctx, http.MethodGet, projectsPath, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Project{}
	}
	return out, nil
}

// Get fetches one project by id.
func (c *Client) Get(ctx context.Context, id int64) (*domain.Project, error) {
	var out domain.Project
	found, err := c.do(ctx, http.MethodGet, projectPath(id), nil, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: empty body for project %d", domain.ErrDecode, id)
	}
	return &out, nil
}

// Create submits a new project and returns what the backend stored.
func (c *Client) Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error) {
	var out domain.Project
	found, err := c.do(ctx, http.MethodPost, projectsPath, in, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return projectFromInput(0, in), nil
	}
	return &out, nil
}

// Update replaces the project with the given id.
// A 2xx without a body yields the submitted values.
func (c *Client) Update(ctx context.Context, id int64, in domain.ProjectInput) (*domain.Project, error) {
	var out domain.Project
	found, err := c.do(ctx, http.MethodPut, projectPath(id), in, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return projectFromInput(id, in), nil
	}
	return &out, nil
}

// Delete removes the project with the given id. 200 and 204 both count as success.
func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, projectPath(id), nil, nil)
	return err
}

// Ping reports whether the backend answers HTTP at all. Any status counts as up.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+projectsPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// do performs one request. It reports whether a body was decoded into out.
// Non-2xx responses come back as *domain.APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("%w: failed to read response: %w", domain.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, newAPIError(resp.StatusCode, respBody)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(respBody)) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}

	return true, nil
}

// newAPIError extracts a message from an error body. A body that is not JSON
// is treated as an empty object.
func newAPIError(status int, body []byte) *domain.APIError {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	msg := strings.TrimSpace(eb.Message)
	if msg == "" {
		msg = strings.TrimSpace(eb.Error)
	}
	return &domain.APIError{StatusCode: status, Message: msg}
}

func projectPath(id int64) string {
	return projectsPath + "/" + strconv.FormatInt(id, 10)
}

func projectFromInput(id int64, in domain.ProjectInput) *domain.Project {
	desc := in.Description
	return &domain.Project{
		ID:                id,
		Title:             in.Title,
		Description:       &desc,
		Status:            in.Status,
		ResponsiblePerson: in.ResponsiblePerson,
	}
}
