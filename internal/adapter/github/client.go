package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bkyoung/prpdf/internal/adapter/httpapi"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 30 * time.Second
	apiVersion     = "2022-11-28"
)

// ResponseCache stores successful GET response bodies keyed by URL.
type ResponseCache interface {
	Get(ctx context.Context, url string) ([]byte, bool, error)
	Put(ctx context.Context, url string, body []byte) error
}

// Client is a read-only HTTP client for the GitHub REST API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	cache      ResponseCache
	logger     httpapi.Logger
}

// NewClient creates a new GitHub API client. The token may be empty for
// public repositories; set it to a personal access token for private ones.
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetBaseURL sets a custom base URL (for testing).
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// SetTimeout sets the HTTP timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// SetCache installs a response cache for GET requests.
func (c *Client) SetCache(cache ResponseCache) {
	c.cache = cache
}

// SetLogger installs a structured logger for API calls.
func (c *Client) SetLogger(logger httpapi.Logger) {
	c.logger = logger
}

// GetPullRequest fetches the pull request detail.
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (PullRequest, error) {
	var pr PullRequest
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d", c.baseURL, owner, repo, number)
	if err := c.getJSON(ctx, url, &pr); err != nil {
		return PullRequest{}, fmt.Errorf("fetch pull request: %w", err)
	}
	return pr, nil
}

// ListCommits fetches the commits belonging to a pull request.
func (c *Client) ListCommits(ctx context.Context, owner, repo string, number int) ([]Commit, error) {
	var commits []Commit
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/commits", c.baseURL, owner, repo, number)
	if err := c.getJSON(ctx, url, &commits); err != nil {
		return nil, fmt.Errorf("fetch pull request commits: %w", err)
	}
	return commits, nil
}

// ListFiles fetches the cumulative changed files of a pull request.
func (c *Client) ListFiles(ctx context.Context, owner, repo string, number int) ([]File, error) {
	var files []File
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/files", c.baseURL, owner, repo, number)
	if err := c.getJSON(ctx, url, &files); err != nil {
		return nil, fmt.Errorf("fetch pull request files: %w", err)
	}
	return files, nil
}

// GetCommit fetches a single commit including its changed files.
func (c *Client) GetCommit(ctx context.Context, owner, repo, sha string) (Commit, error) {
	var commit Commit
	url := fmt.Sprintf("%s/repos/%s/%s/commits/%s", c.baseURL, owner, repo, sha)
	if err := c.getJSON(ctx, url, &commit); err != nil {
		return Commit{}, fmt.Errorf("fetch commit %s: %w", sha, err)
	}
	return commit, nil
}

// GetIssue fetches the issue view of a pull request, which carries the
// closed_by field absent from the pulls endpoint.
func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int) (Issue, error) {
	var issue Issue
	url := fmt.Sprintf("%s/repos/%s/%s/issues/%d", c.baseURL, owner, repo, number)
	if err := c.getJSON(ctx, url, &issue); err != nil {
		return Issue{}, fmt.Errorf("fetch issue: %w", err)
	}
	return issue, nil
}

// getJSON executes a GET request and decodes the JSON response into out.
// Successful responses are served from and written to the cache when one
// is installed.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	start := time.Now()

	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, url)
		if err == nil && ok {
			if c.logger != nil {
				c.logger.LogResponse(ctx, httpapi.ResponseLog{
					API:        apiName,
					Method:     http.MethodGet,
					URL:        url,
					Timestamp:  time.Now(),
					Duration:   time.Since(start),
					StatusCode: http.StatusOK,
					BodyBytes:  len(body),
					FromCache:  true,
				})
			}
			return json.Unmarshal(body, out)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	if c.logger != nil {
		c.logger.LogRequest(ctx, httpapi.RequestLog{
			API:       apiName,
			Method:    http.MethodGet,
			URL:       url,
			Timestamp: time.Now(),
			Token:     c.token,
		})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := &httpapi.Error{
			Type:    httpapi.ErrTypeTimeout,
			Message: err.Error(),
			API:     apiName,
		}
		c.logError(ctx, url, start, apiErr, 0)
		return apiErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := MapHTTPError(resp.StatusCode, body)
		c.logError(ctx, url, start, apiErr, resp.StatusCode)
		return apiErr
	}

	if c.logger != nil {
		c.logger.LogResponse(ctx, httpapi.ResponseLog{
			API:        apiName,
			Method:     http.MethodGet,
			URL:        url,
			Timestamp:  time.Now(),
			Duration:   time.Since(start),
			StatusCode: resp.StatusCode,
			BodyBytes:  len(body),
		})
	}

	if c.cache != nil {
		// Cache failures are not fatal; the fetch already succeeded.
		_ = c.cache.Put(ctx, url, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func (c *Client) logError(ctx context.Context, url string, start time.Time, err error, status int) {
	if c.logger == nil {
		return
	}
	c.logger.LogError(ctx, httpapi.ErrorLog{
		API:        apiName,
		Method:     http.MethodGet,
		URL:        url,
		Timestamp:  time.Now(),
		Duration:   time.Since(start),
		Error:      err,
		StatusCode: status,
	})
}
