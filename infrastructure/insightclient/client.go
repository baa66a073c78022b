// Package insightclient reads team insight data from a remote insight API.
package insightclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"teaminsight/frontend/insight"
	"teaminsight/models"
)

const (
	userAgent    = "teaminsight/1.0"
	maxErrorBody = 4 << 10
)

// StatusError is returned for non-2xx API responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("insight api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("insight api: status %d: %s", e.StatusCode, e.Message)
}

// Client implements insight.Client over HTTP. It does not retry.
type Client struct {
	http    *http.Client
	baseURL *url.URL
}

var _ insight.Client = (*Client)(nil)

func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse insight api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("insight api url must be absolute: %q", baseURL)
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: u,
	}, nil
}

func (c *Client) ListProjects(ctx context.Context, teamID int64, q models.InsightProjectQuery) (models.InsightProjectPage, error) {
	params := url.Values{}
	if q.Word != "" {
		params.Set("word", q.Word)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var page models.InsightProjectPage
	if err := c.getJSON(ctx, c.endpoint(params, "teams", strconv.FormatInt(teamID, 10), "insight", "projects"), &page); err != nil {
		return models.InsightProjectPage{}, fmt.Errorf("list team %d projects: %w", teamID, err)
	}
	if page.Items == nil {
		page.Items = []models.InsightProject{}
	}
	return page, nil
}

func (c *Client) ListProjectUsers(ctx context.Context, teamID, projectID int64, q models.InsightUserQuery) ([]models.InsightUser, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var users []models.InsightUser
	endpoint := c.endpoint(params, "teams", strconv.FormatInt(teamID, 10), "insight", "projects", strconv.FormatInt(projectID, 10), "users")
	if err := c.getJSON(ctx, endpoint, &users); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("list project %d users: %w", projectID, insight.ErrProjectNotFound)
		}
		return nil, fmt.Errorf("list project %d users: %w", projectID, err)
	}
	if users == nil {
		users = []models.InsightUser{}
	}
	return users, nil
}

func (c *Client) endpoint(params url.Values, segments ...string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/api/" + strings.Join(segments, "/")
	u.RawQuery = params.Encode()
	return u.String()
}

func (c *Client) getJSON(ctx context.Context, urlStr string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} bodies, falling back to raw text.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
