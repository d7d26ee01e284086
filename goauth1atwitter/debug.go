package goauth1atwitter

import (
	"log"
	"net/http"
	"time"

	"goTweetStatus/auth"
)

type debugTransport struct {
	base http.RoundTripper
	log  *log.Logger
}

func (t *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start)
	if err != nil {
		t.log.Printf("debug: %s %s error=%v duration=%s", req.Method, auth.BaseURI(req.URL), err, dur)
		return nil, err
	}
	t.log.Printf("debug: %s %s status=%d duration=%s", req.Method, auth.BaseURI(req.URL), resp.StatusCode, dur)
	return resp, nil
}

// EnableDebug logs every request's method, endpoint, status and duration to
// l. Headers, query strings and bodies are never logged.
func (c *Client) EnableDebug(l *log.Logger) {
	if c == nil || l == nil {
		return
	}
	base := c.HTTP.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.HTTP.Transport = &debugTransport{base: base, log: l}
}
