// Package config loads okauth settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/simp-lee/odnoklassniki"
)

const (
	userConfigDir  = ".config/okauth"
	configFileName = "config.yaml"
)

// Config holds the resolved okauth configuration.
type Config struct {
	ClientID       string            `yaml:"client_id"`
	ApplicationKey string            `yaml:"application_key"`
	ClientSecret   string            `yaml:"client_secret"`
	Scope          []string          `yaml:"scope,omitempty"`
	RedirectURI    string            `yaml:"redirect_uri"`
	AccessToken    string            `yaml:"access_token,omitempty"`
	RefreshToken   string            `yaml:"refresh_token,omitempty"`
	Timeout        time.Duration     `yaml:"timeout,omitempty"`
	Headers        map[string]string `yaml:"headers,omitempty"`

	// Endpoint overrides; empty values keep the production endpoints.
	LoginURL string `yaml:"login_url,omitempty"`
	TokenURL string `yaml:"token_url,omitempty"`
	APIURL   string `yaml:"api_url,omitempty"`
}

// DefaultPath returns $HOME/.config/okauth/config.yaml, or "" when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, userConfigDir, configFileName)
}

// Load reads the YAML file at path. A missing file yields an empty Config
// unless required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from OK_* variables found through lookup.
// OK_SCOPE is a comma-separated list.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	set("OK_CLIENT_ID", &c.ClientID)
	set("OK_APPLICATION_KEY", &c.ApplicationKey)
	set("OK_CLIENT_SECRET", &c.ClientSecret)
	set("OK_REDIRECT_URI", &c.RedirectURI)
	set("OK_ACCESS_TOKEN", &c.AccessToken)
	if v, ok := lookup("OK_SCOPE"); ok && v != "" {
		c.Scope = splitList(v)
	}
}

// Validate reports the required fields that are empty.
func (c *Config) Validate(needToken bool) error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "client_id")
	}
	if c.ApplicationKey == "" {
		missing = append(missing, "application_key")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "client_secret")
	}
	if needToken && c.AccessToken == "" {
		missing = append(missing, "access_token")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Options converts the configuration into client options.
func (c *Config) Options() []odnoklassniki.Option {
	opts := []odnoklassniki.Option{
		odnoklassniki.WithRedirectURI(c.RedirectURI),
		odnoklassniki.WithAccessToken(c.AccessToken),
		odnoklassniki.WithRefreshToken(c.RefreshToken),
		odnoklassniki.WithTimeout(c.Timeout),
	}
	for k, v := range c.Headers {
		opts = append(opts, odnoklassniki.WithHeader(k, v))
	}
	var e odnoklassniki.Endpoints
	e.AuthURL = c.LoginURL
	e.TokenURL = c.TokenURL
	e.APIURL = c.APIURL
	return append(opts, odnoklassniki.WithEndpoints(e))
}

// NewClient builds a client from the configuration.
func (c *Config) NewClient(extra ...odnoklassniki.Option) *odnoklassniki.Client {
	opts := append(c.Options(), extra...)
	return odnoklassniki.New(c.ClientID, c.ApplicationKey, c.ClientSecret, c.Scope, opts...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
