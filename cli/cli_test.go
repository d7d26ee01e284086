package cli

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"goTweetStatus/logging"
)

func setup(t *testing.T) (configPath string, srv *httptest.Server) {
	t.Helper()
	for _, k := range []string{
		"TWITTER_BEARER_TOKEN", "TWITTER_CONSUMER_KEY", "TWITTER_CONSUMER_SECRET",
		"TWITTER_ACCESS_TOKEN", "TWITTER_ACCESS_SECRET",
		"TWITTER_SEARCH_RECENT_URL", "TWITTER_UPDATE_STATUSES_URL",
	} {
		t.Setenv(k, "")
	}

	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/2/tweets/search/recent":
			_, _ = io.WriteString(w, `{"data":[{"author_id":"1","text":"found it","id":"9","created_at":"2021-01-01T00:00:00.000Z"}],
				"includes":{"users":[{"created_at":"2010-01-01T00:00:00.000Z","username":"u","id":"1","name":"U"}]},
				"meta":{"newest_id":"9","oldest_id":"9","result_count":1}}`)
		case r.Method == http.MethodPost && r.URL.Path == "/1.1/statuses/update.json":
			if !strings.HasPrefix(r.Header.Get("Authorization"), "OAuth oauth_consumer_key=ck, ") {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			fmt.Fprintf(w, `{"created_at":"now","id":5,"id_str":"5","text":%q}`, r.URL.Query().Get("status"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	configPath = filepath.Join(t.TempDir(), "twitter_config.toml")
	body := fmt.Sprintf(`
[credentials]
bearer_token = "very-secret-bearer"
consumer_key = "ck"
consumer_secret = "very-secret-consumer"
access_token = "at"
access_secret = "very-secret-access"

[endpoints]
search_recent = "%s/2/tweets/search/recent"
update_statuses = "%s/1.1/statuses/update.json"
`, srv.URL, srv.URL)
	if err := os.WriteFile(configPath, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return configPath, srv
}

func TestCheckConfig(t *testing.T) {
	path, _ := setup(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"check-config", "--config", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Configuration is valid") || !strings.Contains(stdout.String(), "consumer_key=ck access_token=at") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if strings.Contains(stdout.String(), "very-secret") {
		t.Errorf("check-config printed a secret: %s", stdout.String())
	}
}

func TestCheckConfigMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"check-config", "--config", filepath.Join(t.TempDir(), "none.toml")}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stderr.String(), "file not found") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestUpdate(t *testing.T) {
	path, _ := setup(t)
	logPath := filepath.Join(t.TempDir(), "tweet.log")
	var stdout, stderr bytes.Buffer
	code := run([]string{"update", "--config", path, "--debug", "--log-file", logPath, "hello", "world"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), `"id_str": "5"`) || !strings.Contains(stdout.String(), `"text": "hello world"`) {
		t.Errorf("stdout = %s", stdout.String())
	}
	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "POST") || strings.Contains(string(b), "OAuth") {
		t.Errorf("debug log = %q", b)
	}
}

func TestSearch(t *testing.T) {
	path, _ := setup(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"search", "--config", path, "golang"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), `"text": "found it"`) || !strings.Contains(stdout.String(), `"result_count": 1`) {
		t.Errorf("stdout = %s", stdout.String())
	}
}

func TestUpdateRequiresText(t *testing.T) {
	path, _ := setup(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"update", "--config", path}, &stdout, &stderr); code != 1 {
		t.Errorf("exit = %d", code)
	}
}

func TestUpdateServerRejects(t *testing.T) {
	path, srv := setup(t)
	t.Setenv("TWITTER_UPDATE_STATUSES_URL", srv.URL+"/missing")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"update", "--config", path, "hi"}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stderr.String(), "status code 404") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestFailedCommandReleasesLogFile(t *testing.T) {
	path, srv := setup(t)
	t.Setenv("TWITTER_UPDATE_STATUSES_URL", srv.URL+"/missing")
	logPath := filepath.Join(t.TempDir(), "tweet.log")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"update", "--config", path, "--debug", "--log-file", logPath, "hi"}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit = %d", code)
	}
	if w := logging.Logger().Writer(); w != os.Stderr {
		t.Errorf("logger still writes to %T after a failed command", w)
	}
	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "404") {
		t.Errorf("debug log = %q", b)
	}
}
