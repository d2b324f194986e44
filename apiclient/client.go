// Package apiclient is a typed client for the HealthTrack REST API. The terminal
// UI talks to the server exclusively through it.
package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"healthtrack/models"

	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	// Count is set when a program delete is blocked by enrollments.
	Count *int64
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
	Count *int64 `json:"count"`
}

type ProgramRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type ClientRequest struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Stats mirrors GET /stats.
type Stats struct {
	Clients          int64 `json:"clients"`
	Programs         int64 `json:"programs"`
	Enrollments      int64 `json:"enrollments"`
	EnrolledToday    int64 `json:"enrolledToday"`
	EnrolledThisWeek int64 `json:"enrolledThisWeek"`
}

type Option func(*resty.Client)

// WithToken sends token as a bearer token on every request.
func WithToken(token string) Option {
	return func(rc *resty.Client) {
		if token != "" {
			rc.SetAuthToken(token)
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(rc *resty.Client) { rc.SetTimeout(d) }
}

type Client struct {
	http *resty.Client
}

// New returns a client for the API rooted at baseURL, e.g. http://localhost:4000/api.
func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{http: rc}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	req := c.http.R().SetContext(ctx).SetError(&errorBody{})
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode(), Message: http.StatusText(resp.StatusCode())}
	if eb, ok := resp.Error().(*errorBody); ok && eb.Error != "" {
		apiErr.Message = eb.Error
		apiErr.Count = eb.Count
	}
	return apiErr
}

// Programs

func (c *Client) GetPrograms(ctx context.Context) ([]models.Program, error) {
	var programs []models.Program
	err := c.do(ctx, http.MethodGet, "/programs", nil, &programs)
	return programs, err
}

func (c *Client) GetProgram(ctx context.Context, id uint) (*models.Program, error) {
	var program models.Program
	if err := c.do(ctx, http.MethodGet, "/programs/"+idPath(id), nil, &program); err != nil {
		return nil, err
	}
	return &program, nil
}

func (c *Client) CreateProgram(ctx context.Context, req ProgramRequest) (*models.Program, error) {
	var program models.Program
	if err := c.do(ctx, http.MethodPost, "/programs", req, &program); err != nil {
		return nil, err
	}
	return &program, nil
}

func (c *Client) UpdateProgram(ctx context.Context, id uint, req ProgramRequest) (*models.Program, error) {
	var program models.Program
	if err := c.do(ctx, http.MethodPut, "/programs/"+idPath(id), req, &program); err != nil {
		return nil, err
	}
	return &program, nil
}

func (c *Client) DeleteProgram(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, "/programs/"+idPath(id), nil, nil)
}

// Clients

func (c *Client) GetClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := c.do(ctx, http.MethodGet, "/clients", nil, &clients)
	return clients, err
}

func (c *Client) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := c.do(ctx, http.MethodGet, "/clients/"+idPath(id), nil, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *Client) SearchClients(ctx context.Context, name string) ([]models.Client, error) {
	var clients []models.Client
	err := c.do(ctx, http.MethodGet, "/clients/search?name="+url.QueryEscape(name), nil, &clients)
	return clients, err
}

func (c *Client) CreateClient(ctx context.Context, req ClientRequest) (*models.Client, error) {
	var client models.Client
	if err := c.do(ctx, http.MethodPost, "/clients", req, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *Client) UpdateClient(ctx context.Context, id uint, req ClientRequest) (*models.Client, error) {
	var client models.Client
	if err := c.do(ctx, http.MethodPut, "/clients/"+idPath(id), req, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *Client) DeleteClient(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, "/clients/"+idPath(id), nil, nil)
}

// Enrollments

func (c *Client) GetEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := c.do(ctx, http.MethodGet, "/enrollments", nil, &enrollments)
	return enrollments, err
}

func (c *Client) CreateEnrollment(ctx context.Context, clientID, programID uint) (*models.Enrollment, error) {
	body := map[string]uint{"clientId": clientID, "programId": programID}
	var enrollment models.Enrollment
	if err := c.do(ctx, http.MethodPost, "/enrollments", body, &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// CreateBulkEnrollments enrolls a client in several programs. The result holds
// only the enrollments the server could create.
func (c *Client) CreateBulkEnrollments(ctx context.Context, clientID uint, programIDs []uint) ([]models.Enrollment, error) {
	body := struct {
		ClientID   uint   `json:"clientId"`
		ProgramIDs []uint `json:"programIds"`
	}{clientID, programIDs}

	var enrollments []models.Enrollment
	err := c.do(ctx, http.MethodPost, "/enrollments/bulk", body, &enrollments)
	return enrollments, err
}

func (c *Client) DeleteEnrollment(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, "/enrollments/"+idPath(id), nil, nil)
}

// RemoveClientFromProgram deletes the enrollment of clientID in programID.
func (c *Client) RemoveClientFromProgram(ctx context.Context, clientID, programID uint) error {
	path := fmt.Sprintf("/enrollments/client/%d/program/%d", clientID, programID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func idPath(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
