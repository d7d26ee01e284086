package auth

import (
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fixedNoncer string

func (n fixedNoncer) Nonce() string { return string(n) }

func fixedConfig() *Config {
	c := NewConfig("test-consumer-key", "test consumer secret")
	c.Noncer = fixedNoncer("0123456789abcdef0123456789abcdef")
	c.Now = func() time.Time { return time.Unix(1600000000, 0) }
	return c
}

func TestAuthorizationHeaderRegression(t *testing.T) {
	token := NewToken("test-access-token", "test&access/secret")
	got := fixedConfig().AuthorizationHeader(
		http.MethodPost,
		"https://api.example.com/1.1/statuses/update.json",
		map[string]string{"status": "hello world from twitter client5"},
		token,
	)
	want := "OAuth oauth_consumer_key=test-consumer-key, oauth_nonce=0123456789abcdef0123456789abcdef, " +
		"oauth_signature=B5HAm5qtKCa8ZBFS%2FGx7Gapu29E%3D, oauth_signature_method=HMAC-SHA1, " +
		"oauth_timestamp=1600000000, oauth_token=test-access-token, oauth_version=1.0"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestAuthorizationHeaderPublishedExample(t *testing.T) {
	c := NewConfig("xvz1evFS4wEEPTGEFPHBog", "kAcSOqF21Fu85e7zjz7ZN2U4ZRhfV3WpwPAoE3Z7kBw")
	c.Noncer = fixedNoncer("kYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg")
	c.Now = func() time.Time { return time.Unix(1318622958, 0) }
	token := NewToken("370773112-GmHxMAgYyLbNEtIKZeRNFsMKPR9EyMZeS9weJAEb", "LswwdoUaIvS8ltyTt5jkRh4J50vUPVVHtR2YPi5kE")

	got := c.AuthorizationHeader(
		http.MethodPost,
		"https://api.twitter.com/1.1/statuses/update.json",
		map[string]string{"status": "Hello Ladies + Gentlemen, a signed OAuth request!"},
		token,
	)
	want := "OAuth oauth_consumer_key=xvz1evFS4wEEPTGEFPHBog, oauth_nonce=kYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg, " +
		"oauth_signature=Tqz6pFAShJQqSyxctXvqKWrv3BQ%3D, oauth_signature_method=HMAC-SHA1, oauth_timestamp=1318622958, " +
		"oauth_token=370773112-GmHxMAgYyLbNEtIKZeRNFsMKPR9EyMZeS9weJAEb, oauth_version=1.0"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestAuthorizationHeaderFreshNonce(t *testing.T) {
	c := NewConfig("key", "secret")
	c.Now = func() time.Time { return time.Unix(1600000000, 0) }
	token := NewToken("token", "token-secret")
	params := map[string]string{"status": "same second"}

	a := c.AuthorizationHeader(http.MethodPost, "https://api.example.com/update", params, token)
	b := c.AuthorizationHeader(http.MethodPost, "https://api.example.com/update", params, token)
	if a == b {
		t.Error("two calls in the same second produced identical headers")
	}
	if strings.Contains(a, "oauth_nonce=1600000000") {
		t.Error("nonce must not be derived from the timestamp")
	}
}

func TestNoncers(t *testing.T) {
	h := (HexNoncer{}).Nonce()
	if b, err := hex.DecodeString(h); err != nil || len(b) != 32 {
		t.Errorf("hex nonce %q: %v", h, err)
	}
	if (HexNoncer{}).Nonce() == h {
		t.Error("hex nonces repeated")
	}
}

func TestTransportSignsRequest(t *testing.T) {
	var gotHeader, gotStatus string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Authorization")
		gotStatus = r.URL.Query().Get("status")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	config := fixedConfig()
	token := NewToken("test-access-token", "test&access/secret")
	client := config.Client(srv.Client().Transport, token)

	endpoint := srv.URL + "/1.1/statuses/update.json"
	req, err := http.NewRequest(http.MethodPost, endpoint+"?status=hello%20world", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if req.Header.Get("Authorization") != "" {
		t.Error("transport modified the caller's request")
	}
	if gotStatus != "hello world" {
		t.Errorf("status = %q", gotStatus)
	}
	want := config.AuthorizationHeader(http.MethodPost, endpoint, map[string]string{"status": "hello world"}, token)
	if gotHeader != want {
		t.Errorf("header = %q\nwant     %q", gotHeader, want)
	}
}

func TestTransportNilToken(t *testing.T) {
	client := NewClient(NewConfig("k", "s"), nil, nil)
	_, err := client.Get("http://127.0.0.1:1/")
	if err == nil || !strings.Contains(err.Error(), "Token is nil") {
		t.Errorf("err = %v", err)
	}
}

func TestSetupClient(t *testing.T) {
	settings := GetClientConfig()
	tr := SetupClient(settings)
	if tr.TLSHandshakeTimeout != settings.TLSHandshake || tr.MaxIdleConnsPerHost != settings.MaxHostIdleConns {
		t.Errorf("transport not built from settings: %+v", tr)
	}
}
