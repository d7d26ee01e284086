package goauth1atwitter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"goTweetStatus/auth"
	"goTweetStatus/config"
	"goTweetStatus/sensitive"
)

const (
	opSearchRecent = "search_recent"
	opUpdateStatus = "update_status"
)

// ErrEmptyStatus is returned by UpdateStatus for an empty status text.
var ErrEmptyStatus = errors.New("goauth1atwitter: status text is empty")

// Client issues bearer-token search requests and OAuth1 signed status
// updates. It holds no per-request state and is safe for concurrent use
// once configured.
type Client struct {
	Endpoints config.Endpoints
	// Auth signs status updates; Noncer and Now may be replaced in tests.
	Auth  *auth.Config
	Token *auth.Token
	// HTTP carries the timeout and base transport for every call.
	HTTP *http.Client

	bearer sensitive.String
}

// New returns a Client for cfg. The configuration is copied; later changes
// to cfg do not affect the client.
func New(cfg *config.Config) *Client {
	creds := cfg.Credentials
	hc := &http.Client{
		Transport: auth.SetupClient(auth.GetClientConfig()),
		Timeout:   cfg.Timeout(),
	}
	return &Client{
		Endpoints: cfg.Endpoints,
		Auth:      auth.NewConfig(creds.ConsumerKey, creds.ConsumerSecret),
		Token:     auth.NewToken(creds.AccessToken, creds.AccessSecret),
		HTTP:      hc,
		bearer:    creds.BearerToken,
	}
}

// GetSearchURL get search request url
func (c *Client) GetSearchURL(query string) (*url.URL, error) {
	u, err := url.Parse(c.Endpoints.SearchRecent)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("query", query)
	q.Set("tweet.fields", "created_at")
	q.Set("expansions", "author_id")
	q.Set("user.fields", "created_at")
	u.RawQuery = q.Encode()
	return u, nil
}

// GetStatusURL get status update request url. The status travels in the
// query string, encoded the same way it is encoded for the signature.
func (c *Client) GetStatusURL(status string) (*url.URL, error) {
	u, err := url.Parse(c.Endpoints.UpdateStatuses)
	if err != nil {
		return nil, err
	}
	u.RawQuery = "status=" + auth.PercentEncode(status)
	return u, nil
}

// SearchRecent runs a recent search for query with bearer authorization.
func (c *Client) SearchRecent(ctx context.Context, query string) (*SearchResult, error) {
	u, err := c.GetSearchURL(query)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.bearer.Reveal())

	var out SearchResult
	if err := c.do(opSearchRecent, c.HTTP, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus posts text as a new status. The request is signed with a
// fresh timestamp and random nonce before it is sent.
func (c *Client) UpdateStatus(ctx context.Context, text string) (*StatusResult, error) {
	if text == "" {
		return nil, ErrEmptyStatus
	}
	u, err := c.GetStatusURL(text)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return nil, err
	}

	signed := c.Auth.Client(c.HTTP.Transport, c.Token)
	signed.Timeout = c.HTTP.Timeout

	var out StatusResult
	if err := c.do(opUpdateStatus, signed, req, &out); err != nil {
		return nil, err
	}
	if out.IDStr == "" {
		return nil, &DeserializationError{Operation: opUpdateStatus, Err: errors.New("response has no id_str")}
	}
	return &out, nil
}

func (c *Client) do(op string, hc *http.Client, req *http.Request, out interface{}) error {
	endpoint := auth.BaseURI(req.URL)
	resp, err := hc.Do(req)
	if err != nil {
		return &TransportError{Operation: op, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Operation: op, URL: endpoint, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Operation: op, URL: endpoint, StatusCode: resp.StatusCode, Body: truncate(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DeserializationError{Operation: op, Body: truncate(body), Err: err}
	}
	return nil
}
