package auth

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"goTweetStatus/sensitive"
)

// A Signer signs messages to create signed OAuth1 Requests.
type Signer interface {
	// Name returns the name of the signing method.
	Name() string
	// Sign signs the message using the given token secret.
	Sign(tokenSecret sensitive.String, message string) (string, error)
}

// HMACSigner signs messages with an HMAC SHA1 digest, using the percent
// encoded consumer secret and token secret joined by "&" as the key.
type HMACSigner struct {
	ConsumerSecret sensitive.String
}

// Name returns the HMAC-SHA1 method.
func (s *HMACSigner) Name() string {
	return "HMAC-SHA1"
}

// Sign calculates the HMAC-SHA1 digest of the message and returns it base64
// encoded (standard alphabet, padded). The result is not percent encoded.
func (s *HMACSigner) Sign(tokenSecret sensitive.String, message string) (string, error) {
	mac := hmac.New(sha1.New, SigningKey(s.ConsumerSecret, tokenSecret))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// SigningKey returns encode(consumerSecret) + "&" + encode(tokenSecret).
// The key must never be logged.
func SigningKey(consumerSecret, tokenSecret sensitive.String) []byte {
	return []byte(PercentEncode(consumerSecret.Reveal()) + "&" + PercentEncode(tokenSecret.Reveal()))
}

// PercentEncode percent encodes a string according to RFC 3986 2.1.
func PercentEncode(input string) string {
	var buf bytes.Buffer
	for _, b := range []byte(input) {
		if shouldEscape(b) {
			fmt.Fprintf(&buf, "%%%02X", b)
		} else {
			buf.WriteByte(b)
		}
	}
	return buf.String()
}

// shouldEscape returns false if the byte is an unreserved character that
// should not be escaped and true otherwise, according to RFC 3986 2.1.
func shouldEscape(c byte) bool {
	// RFC3986 2.3 unreserved characters
	if 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' {
		return false
	}
	switch c {
	case '-', '.', '_', '~':
		return false
	}
	return true
}

// headerKeys is the fixed field order of the Authorization header.
var headerKeys = []string{
	oauthConsumerKeyParam,
	oauthNonceParam,
	oauthSignatureParam,
	oauthSignatureMethodParam,
	oauthTimestampParam,
	oauthTokenParam,
	oauthVersionParam,
}

// AuthHeaderValue formats the seven OAuth params as
//
//	OAuth oauth_consumer_key=<enc>, oauth_nonce=<enc>, ..., oauth_version=<enc>
//
// Each raw value is percent encoded once. It panics if any of the seven
// params is missing, since that can only happen through a programming error.
func AuthHeaderValue(oauthParams map[string]string) string {
	pairs := make([]string, len(headerKeys))
	for i, key := range headerKeys {
		value, ok := oauthParams[key]
		if !ok {
			panic("oauth1: missing " + key + " for Authorization header")
		}
		pairs[i] = key + "=" + PercentEncode(value)
	}
	return authorizationPrefix + strings.Join(pairs, ", ")
}

// CollectParameters returns the request parameters carried in the request
// query. Duplicate query keys are not supported; the first value wins.
func CollectParameters(req *http.Request) map[string]string {
	params := map[string]string{}
	for key, value := range req.URL.Query() {
		params[key] = value[0]
	}
	return params
}

// SignatureBase joins the uppercase method, the percent encoded base URL
// and the percent encoded normalized parameter string with "&", as defined
// in RFC 5849 3.4.1.1.
func SignatureBase(method, baseURL, normalizedParams string) string {
	return strings.Join([]string{method, PercentEncode(baseURL), PercentEncode(normalizedParams)}, "&")
}

// BaseURI returns the base string URI of a request URL according to RFC 5849
// 3.4.1.2. The scheme and host are lowercased, the port is dropped if it
// is 80 or 443, and the query and fragment are removed.
func BaseURI(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	if port := u.Port(); port == "80" || port == "443" {
		host = strings.ToLower(u.Hostname())
		if strings.Contains(host, ":") {
			host = "[" + host + "]"
		}
	}
	return fmt.Sprintf("%v://%v%v", scheme, host, u.EscapedPath())
}

// NormalizedParameterString merges the OAuth params (which must exclude
// oauth_signature) and the request params into one parameter string. Keys
// and values are encoded, joined with "=" and the pairs are sorted
// byte-wise on the encoded "key=value" text before being joined with "&".
// A key present in both sets appears twice.
func NormalizedParameterString(oauthParams, requestParams map[string]string) string {
	pairs := make([]string, 0, len(oauthParams)+len(requestParams))
	for _, params := range []map[string]string{oauthParams, requestParams} {
		for key, value := range params {
			pairs = append(pairs, PercentEncode(key)+"="+PercentEncode(value))
		}
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "&")
}
