package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"goTweetStatus/sensitive"
)

// HTTPClientSettings tunes the dialer, pools and timeouts of the base transport.
type HTTPClientSettings struct {
	Connect          time.Duration
	ConnKeepAlive    time.Duration
	ExpectContinue   time.Duration
	IdleConn         time.Duration
	MaxAllIdleConns  int
	MaxHostIdleConns int
	ResponseHeader   time.Duration
	TLSHandshake     time.Duration
}

// GetClientConfig returns the default transport settings.
func GetClientConfig() *HTTPClientSettings {
	return &HTTPClientSettings{
		Connect:          5 * time.Second,
		ExpectContinue:   1 * time.Second,
		IdleConn:         90 * time.Second,
		ConnKeepAlive:    30 * time.Second,
		MaxAllIdleConns:  100,
		MaxHostIdleConns: 10,
		ResponseHeader:   5 * time.Second,
		TLSHandshake:     5 * time.Second,
	}
}

// SetupClient builds an *http.Transport from httpSettings.
func SetupClient(httpSettings *HTTPClientSettings) *http.Transport {
	return &http.Transport{
		ResponseHeaderTimeout: httpSettings.ResponseHeader,
		Proxy:                 http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			KeepAlive: httpSettings.ConnKeepAlive,
			Timeout:   httpSettings.Connect,
		}).DialContext,
		MaxIdleConns:          httpSettings.MaxAllIdleConns,
		IdleConnTimeout:       httpSettings.IdleConn,
		TLSHandshakeTimeout:   httpSettings.TLSHandshake,
		MaxIdleConnsPerHost:   httpSettings.MaxHostIdleConns,
		ExpectContinueTimeout: httpSettings.ExpectContinue,
	}
}

// Noncer provides random nonce strings.
type Noncer interface {
	Nonce() string
}

// HexNoncer reads 32 bytes from crypto/rand and
// returns those bytes as a hex encoded string.
type HexNoncer struct{}

// Nonce provides a random nonce string.
func (n HexNoncer) Nonce() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Transport is an http.RoundTripper which makes OAuth1 HTTP requests. It
// wraps a base RoundTripper and adds an Authorization header using the
// token from a TokenSource.
type Transport struct {
	// Base is the base RoundTripper used to make HTTP requests. If nil, then
	// http.DefaultTransport is used
	Base http.RoundTripper
	// source supplies the token to use when signing a request
	source TokenSource
	// auther adds OAuth1 Authorization headers to requests
	auther *auther
}

// RoundTrip authorizes the request with a signed OAuth1 Authorization header
// using the auther and TokenSource.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.source == nil {
		return nil, fmt.Errorf("oauth1: Transport's source is nil")
	}
	accessToken, err := t.source.Token()
	if err != nil {
		return nil, err
	}
	if t.auther == nil {
		return nil, fmt.Errorf("oauth1: Transport's auther is nil")
	}
	// RoundTripper should not modify the given request, clone it
	req2 := cloneRequest(req)
	t.auther.SetRequestAuthHeader(req2, accessToken)
	return t.base().RoundTrip(req2)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// cloneRequest returns a clone of the given *http.Request with a shallow
// copy of struct fields and a deep copy of the Header map.
func cloneRequest(req *http.Request) *http.Request {
	r2 := new(http.Request)
	*r2 = *req
	r2.Header = make(http.Header, len(req.Header))
	for k, s := range req.Header {
		r2.Header[k] = append([]string(nil), s...)
	}
	return r2
}

// A TokenSource can return a Token.
type TokenSource interface {
	Token() (*Token, error)
}

// Token is an access token (token credential) with its secret.
type Token struct {
	Token       string
	TokenSecret sensitive.String
}

// NewToken returns a new Token with the given token and token secret.
func NewToken(token string, tokenSecret sensitive.String) *Token {
	return &Token{
		Token:       token,
		TokenSecret: tokenSecret,
	}
}

// StaticTokenSource returns a TokenSource which always returns the same Token.
func StaticTokenSource(token *Token) TokenSource {
	return staticTokenSource{token}
}

type staticTokenSource struct {
	token *Token
}

func (s staticTokenSource) Token() (*Token, error) {
	if s.token == nil {
		return nil, errors.New("oauth1: Token is nil")
	}
	return s.token, nil
}

// Config represents an OAuth1 consumer's (client's) key and secret along
// with the pluggable pieces used when signing a request.
type Config struct {
	// Consumer Key (Client Identifier)
	ConsumerKey string
	// Consumer Secret (Client Shared-Secret)
	ConsumerSecret sensitive.String
	// OAuth1 Signer (defaults to HMAC-SHA1)
	Signer Signer
	// Noncer creates request nonces (defaults to HexNoncer)
	Noncer Noncer
	// Now returns the signing time (defaults to time.Now)
	Now func() time.Time
}

// NewConfig returns a new Config with the given consumer key and secret.
func NewConfig(consumerKey string, consumerSecret sensitive.String) *Config {
	return &Config{
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
	}
}

// Client returns an HTTP client which signs every request it sends with t.
func (c *Config) Client(base http.RoundTripper, t *Token) *http.Client {
	return NewClient(c, base, t)
}

// NewClient returns a new http Client which signs requests via OAuth1.
func NewClient(config *Config, base http.RoundTripper, token *Token) *http.Client {
	transport := &Transport{
		Base:   base,
		source: StaticTokenSource(token),
		auther: newAuther(config),
	}
	return &http.Client{Transport: transport}
}

// AuthorizationHeader returns the Authorization header value for a request
// with the given method, base URL (no query) and request parameters.
func (c *Config) AuthorizationHeader(method, baseURL string, requestParams map[string]string, token *Token) string {
	return newAuther(c).authorizationHeader(method, baseURL, requestParams, token)
}

const (
	authorizationHeaderParam  = "Authorization"
	authorizationPrefix       = "OAuth " // trailing space is intentional
	oauthConsumerKeyParam     = "oauth_consumer_key"
	oauthNonceParam           = "oauth_nonce"
	oauthSignatureParam       = "oauth_signature"
	oauthSignatureMethodParam = "oauth_signature_method"
	oauthTimestampParam       = "oauth_timestamp"
	oauthTokenParam           = "oauth_token"
	oauthVersionParam         = "oauth_version"
	defaultOauthVersion       = "1.0"
)

// auther adds an "OAuth" Authorization header field to requests.
type auther struct {
	config *Config
}

func newAuther(config *Config) *auther {
	return &auther{
		config: config,
	}
}

// SetRequestAuthHeader sets the OAuth1 header for making authenticated
// requests with an access token according to RFC 5849 3.1. Request
// parameters are taken from the URL query.
func (a *auther) SetRequestAuthHeader(req *http.Request, accessToken *Token) {
	header := a.authorizationHeader(req.Method, BaseURI(req.URL), CollectParameters(req), accessToken)
	req.Header.Set(authorizationHeaderParam, header)
}

func (a *auther) authorizationHeader(method, baseURL string, requestParams map[string]string, accessToken *Token) string {
	oauthParams := a.commonOAuthParams()
	oauthParams[oauthTokenParam] = accessToken.Token
	signatureBase := SignatureBase(method, baseURL, NormalizedParameterString(oauthParams, requestParams))
	// HMAC-SHA1 has no failure path
	signature, _ := a.signer().Sign(accessToken.TokenSecret, signatureBase)
	oauthParams[oauthSignatureParam] = signature
	return AuthHeaderValue(oauthParams)
}

// commonOAuthParams returns a fresh map of the OAuth1 protocol parameters,
// excluding oauth_token and oauth_signature.
func (a *auther) commonOAuthParams() map[string]string {
	return map[string]string{
		oauthConsumerKeyParam:     a.config.ConsumerKey,
		oauthSignatureMethodParam: a.signer().Name(),
		oauthTimestampParam:       strconv.FormatInt(a.epoch(), 10),
		oauthNonceParam:           a.nonce(),
		oauthVersionParam:         defaultOauthVersion,
	}
}

// Returns a hex encoded random 32 byte string.
func (a *auther) nonce() string {
	if a.config.Noncer != nil {
		return a.config.Noncer.Nonce()
	}
	return HexNoncer{}.Nonce()
}

// Returns the Unix epoch seconds.
func (a *auther) epoch() int64 {
	if a.config.Now != nil {
		return a.config.Now().Unix()
	}
	return time.Now().Unix()
}

// Returns the Config's Signer or the default Signer.
func (a *auther) signer() Signer {
	if a.config.Signer != nil {
		return a.config.Signer
	}
	return &HMACSigner{ConsumerSecret: a.config.ConsumerSecret}
}
