// Package github fetches repository metadata from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	oerrors "github.com/readmegen/cli/internal/errors"
	"github.com/readmegen/cli/internal/git"
	"github.com/readmegen/cli/internal/output"
)

// Defaults for NewClient.
const (
	DefaultBaseURL = "https://api.github.com"
	DefaultTimeout = 10 * time.Second
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// Client calls the GitHub REST API.
type Client struct {
	baseURL   string
	token     string
	timeout   time.Duration
	http      *http.Client
	sanitizer *bluemonday.Policy
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API base URL, e.g. a GitHub Enterprise endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithToken authenticates requests with a personal access token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		http:      http.DefaultClient,
		sanitizer: bluemonday.StrictPolicy(),
		userAgent: "readmegen",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// License is the license GitHub detected for a repository.
type License struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	SPDXID string `json:"spdx_id"`
}

// Repository is the subset of the repository resource readmegen uses.
type Repository struct {
	FullName      string   `json:"full_name"`
	Description   string   `json:"description"`
	Homepage      string   `json:"homepage"`
	HTMLURL       string   `json:"html_url"`
	Language      string   `json:"language"`
	DefaultBranch string   `json:"default_branch"`
	Stars         int      `json:"stargazers_count"`
	Forks         int      `json:"forks_count"`
	Topics        []string `json:"topics"`
	Archived      bool     `json:"archived"`
	License       *License `json:"license"`
}

type apiError struct {
	Message string `json:"message"`
}

// Repository fetches GET /repos/{owner}/{repo}. Free-text fields are
// sanitized of HTML before being returned.
func (c *Client) Repository(ctx context.Context, slug string) (*Repository, error) {
	if !git.ValidSlug(slug) {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("invalid repository %q", slug), "", "github-repo",
			"Use the owner/repo form, e.g. octocat/hello-world.")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/repos/" + slug
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	output.Debug("fetching repository metadata", "url", endpoint, "authenticated", c.token != "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, oerrors.NewConnectivityError(
			fmt.Sprintf("requesting %s: %v", endpoint, err),
			map[string]string{"Repository": slug},
			"Check your network connection or raise github.timeout.")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, oerrors.NewConnectivityError(
			fmt.Sprintf("reading response: %v", err),
			map[string]string{"Repository": slug}, "")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, body, slug)
	}

	var repo Repository
	if err := json.Unmarshal(body, &repo); err != nil {
		return nil, fmt.Errorf("decoding repository %s: %w", slug, err)
	}
	c.sanitize(&repo)
	return &repo, nil
}

func (c *Client) sanitize(r *Repository) {
	r.Description = strings.TrimSpace(c.sanitizer.Sanitize(r.Description))
	r.Homepage = strings.TrimSpace(c.sanitizer.Sanitize(r.Homepage))
	topics := r.Topics[:0]
	for _, t := range r.Topics {
		if t = strings.TrimSpace(c.sanitizer.Sanitize(t)); t != "" {
			topics = append(topics, t)
		}
	}
	r.Topics = topics
}

// statusError maps an unsuccessful response to a sentinel-backed error.
func statusError(resp *http.Response, body []byte, slug string) error {
	var apiErr apiError
	_ = json.Unmarshal(body, &apiErr)
	msg := apiErr.Message
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	ctx := map[string]string{
		"Repository": slug,
		"Status":     fmt.Sprintf("%d", resp.StatusCode),
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return oerrors.NewNotFoundError(
			fmt.Sprintf("repository %s not found: %s", slug, msg), "",
			"Check the owner/repo spelling; private repositories need a token.")
	case resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return oerrors.NewPermissionError("API rate limit exceeded: "+msg, ctx,
			"Set GITHUB_TOKEN to raise the rate limit.")
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return oerrors.NewPermissionError(msg, ctx, "Check that the token is valid and can read the repository.")
	case resp.StatusCode >= 500:
		return oerrors.NewConnectivityError(fmt.Sprintf("server error: %s", msg), ctx, "Retry later.")
	default:
		return fmt.Errorf("unexpected status %d for %s: %s", resp.StatusCode, slug, msg)
	}
}

// IsRemoteFailure reports whether err is an expected remote failure that a
// caller may downgrade to a warning.
func IsRemoteFailure(err error) bool {
	return errors.Is(err, oerrors.ErrConnectivity) ||
		errors.Is(err, oerrors.ErrPermission) ||
		errors.Is(err, oerrors.ErrNotFound)
}
