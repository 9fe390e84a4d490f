package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/dirm02/course-admin-api/internal/dto"
	"github.com/dirm02/course-admin-api/internal/models"
	"github.com/dirm02/course-admin-api/pkg/config"
	appErrors "github.com/dirm02/course-admin-api/pkg/errors"
)

// Observer receives timing for every upstream call. Implemented by the
// metrics service; nil disables observation.
type Observer interface {
	ObserveUpstream(operation string, duration time.Duration, err error)
}

// Client is the typed HTTP client for the remote catalog API. All persistence
// lives upstream; the client only shapes requests and responses and reports
// failures to the caller.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// NewClient builds a catalog API client with the configured timeout.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger, observer Observer) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
		observer: observer,
	}
}

// ListCourses fetches one page of courses, optionally filtered by a free-text
// query. The upstream serves fixed pages of ten.
func (c *Client) ListCourses(ctx context.Context, page int, query string) (*models.CoursePage, error) {
	params := url.Values{}
	params.Set("page", fmt.Sprintf("%d", page))
	if query != "" {
		params.Set("query", query)
	}

	var result models.CoursePage
	if err := c.do(ctx, "list_courses", http.MethodGet, "/courses?"+params.Encode(), nil, &result); err != nil {
		return nil, err
	}
	if result.Courses == nil {
		result.Courses = []models.Course{}
	}
	return &result, nil
}

// CreateCourse submits a new course in resolved-identifier form and returns
// the upstream acknowledgement verbatim.
func (c *Client) CreateCourse(ctx context.Context, payload dto.CoursePayload) (json.RawMessage, error) {
	var ack json.RawMessage
	if err := c.do(ctx, "create_course", http.MethodPost, "/courses", payload, &ack); err != nil {
		return nil, err
	}
	return ack, nil
}

// UpdateCourse replaces the remote record identified by id.
func (c *Client) UpdateCourse(ctx context.Context, id string, payload dto.CoursePayload) (json.RawMessage, error) {
	var ack json.RawMessage
	if err := c.do(ctx, "update_course", http.MethodPut, "/courses/"+url.PathEscape(id), payload, &ack); err != nil {
		return nil, err
	}
	return ack, nil
}

// DeleteCourse removes the remote record identified by id.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.do(ctx, "delete_course", http.MethodDelete, "/courses/"+url.PathEscape(id), nil, nil)
}

// ListUniversities fetches the institution reference list.
func (c *Client) ListUniversities(ctx context.Context) ([]models.University, error) {
	var result []models.University
	if err := c.do(ctx, "list_universities", http.MethodGet, "/categories/universities", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListCities fetches the city reference list.
func (c *Client) ListCities(ctx context.Context) ([]models.City, error) {
	var result []models.City
	if err := c.do(ctx, "list_cities", http.MethodGet, "/categories/cities", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListCountries fetches the country reference list.
func (c *Client) ListCountries(ctx context.Context) ([]models.Country, error) {
	var result []models.Country
	if err := c.do(ctx, "list_countries", http.MethodGet, "/categories/countries", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListCurrencies fetches the currency reference list.
func (c *Client) ListCurrencies(ctx context.Context) ([]models.Currency, error) {
	var result []models.Currency
	if err := c.do(ctx, "list_currencies", http.MethodGet, "/categories/currencies", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, operation, method, path string, body, dest interface{}) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, path, body, dest)
	if c.observer != nil {
		c.observer.ObserveUpstream(operation, time.Since(start), err)
	}
	if err != nil {
		c.logger.Warn("upstream call failed",
			zap.String("operation", operation),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return appErrors.Wrap(err, appErrors.ErrUpstreamTimeout.Code, appErrors.ErrUpstreamTimeout.Status, "upstream request timed out")
		}
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "upstream request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return appErrors.New(appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status,
			fmt.Sprintf("upstream responded with status %d", resp.StatusCode))
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read upstream response")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		// Some upstream acks carry no body; leave dest zero-valued.
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected upstream response shape")
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
