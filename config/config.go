package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"goTweetStatus/sensitive"
)

// DefaultPath is where the configuration file is looked up when no path is given.
const DefaultPath = "./config/twitter_config.toml"

// DefaultTimeout bounds a whole API call, connection through body.
const DefaultTimeout = 65 * time.Second

// Credentials keys tokens
type Credentials struct {
	// Bearer token for the app-only read endpoints.
	BearerToken sensitive.String `toml:"bearer_token"`
	//A value used by the Consumer to identify itself to the Service Provider.
	ConsumerKey string `toml:"consumer_key"`
	//A secret used by the Consumer to establish ownership of the Consumer Key.
	ConsumerSecret sensitive.String `toml:"consumer_secret"`
	//A value used by the Consumer to gain access to the Protected Resources on
	//behalf of the User, instead of using the User's Service Provider credentials.
	AccessToken string `toml:"access_token"`
	//A secret used by the Consumer to establish ownership of a given Token.
	AccessSecret sensitive.String `toml:"access_secret"`
}

// Endpoints absolute API URLs
type Endpoints struct {
	SearchRecent   string `toml:"search_recent"`
	UpdateStatuses string `toml:"update_statuses"`
}

// HTTP transport options
type HTTP struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Config is the immutable client configuration. It is loaded once and
// passed by value to the API client.
type Config struct {
	Credentials Credentials `toml:"credentials"`
	Endpoints   Endpoints   `toml:"endpoints"`
	HTTP        HTTP        `toml:"http"`
}

// ConfigError reports a configuration file that is missing, unparsable or
// incomplete. It is fatal at startup.
type ConfigError struct {
	// Path of the configuration file
	Path string
	// Field is the dotted name of the offending field, if any
	Field string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *ConfigError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Field != "" {
		return fmt.Sprintf("config error in %s field %s: %s", e.Path, e.Field, msg)
	}
	return fmt.Sprintf("config error in %s: %s", e.Path, msg)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load reads the TOML file at path, applies TWITTER_* environment overrides
// and validates the result. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		msg := "cannot read file"
		if errors.Is(err, os.ErrNotExist) {
			msg = "file not found"
		}
		return nil, &ConfigError{Path: path, Message: msg, Err: err}
	}
	if _, err := toml.Decode(string(b), &c); err != nil {
		return nil, &ConfigError{Path: path, Message: "fail to parse toml", Err: err}
	}
	c.applyEnv()
	if err := c.validate(); err != nil {
		err.Path = path
		return nil, err
	}
	return &c, nil
}

// Timeout returns the configured request timeout or DefaultTimeout.
func (c Config) Timeout() time.Duration {
	if c.HTTP.TimeoutSeconds > 0 {
		return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
	}
	return DefaultTimeout
}

func (c *Config) applyEnv() {
	secret := func(key string, dst *sensitive.String) {
		if v := os.Getenv(key); v != "" {
			*dst = sensitive.String(v)
		}
	}
	plain := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	secret("TWITTER_BEARER_TOKEN", &c.Credentials.BearerToken)
	plain("TWITTER_CONSUMER_KEY", &c.Credentials.ConsumerKey)
	secret("TWITTER_CONSUMER_SECRET", &c.Credentials.ConsumerSecret)
	plain("TWITTER_ACCESS_TOKEN", &c.Credentials.AccessToken)
	secret("TWITTER_ACCESS_SECRET", &c.Credentials.AccessSecret)
	plain("TWITTER_SEARCH_RECENT_URL", &c.Endpoints.SearchRecent)
	plain("TWITTER_UPDATE_STATUSES_URL", &c.Endpoints.UpdateStatuses)
}

func (c Config) validate() *ConfigError {
	required := []struct {
		field string
		empty bool
	}{
		{"credentials.bearer_token", c.Credentials.BearerToken.Empty()},
		{"credentials.consumer_key", c.Credentials.ConsumerKey == ""},
		{"credentials.consumer_secret", c.Credentials.ConsumerSecret.Empty()},
		{"credentials.access_token", c.Credentials.AccessToken == ""},
		{"credentials.access_secret", c.Credentials.AccessSecret.Empty()},
		{"endpoints.search_recent", c.Endpoints.SearchRecent == ""},
		{"endpoints.update_statuses", c.Endpoints.UpdateStatuses == ""},
	}
	for _, r := range required {
		if r.empty {
			return &ConfigError{Field: r.field, Message: "is required"}
		}
	}
	for field, raw := range map[string]string{
		"endpoints.search_recent":   c.Endpoints.SearchRecent,
		"endpoints.update_statuses": c.Endpoints.UpdateStatuses,
	} {
		u, err := url.Parse(raw)
		if err != nil {
			return &ConfigError{Field: field, Message: "invalid URL", Err: err}
		}
		if !u.IsAbs() || u.Host == "" {
			return &ConfigError{Field: field, Message: fmt.Sprintf("must be an absolute URL: %s", raw)}
		}
		if u.RawQuery != "" {
			return &ConfigError{Field: field, Message: "must not carry a query string"}
		}
	}
	if c.HTTP.TimeoutSeconds < 0 {
		return &ConfigError{Field: "http.timeout_seconds", Message: "must not be negative"}
	}
	return nil
}

// String summarizes the configuration without secrets.
func (c Config) String() string {
	return fmt.Sprintf("consumer_key=%s access_token=%s search_recent=%s update_statuses=%s timeout=%s",
		c.Credentials.ConsumerKey, c.Credentials.AccessToken, c.Endpoints.SearchRecent, c.Endpoints.UpdateStatuses, c.Timeout())
}
