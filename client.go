package odnoklassniki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Default Odnoklassniki endpoints.
const (
	DefaultLoginURL = "http://www.odnoklassniki.ru/oauth/authorize"
	DefaultTokenURL = "http://api.odnoklassniki.ru/oauth/token.do"
	DefaultAPIURL   = "http://api.odnoklassniki.ru/fb.do"
)

// methodGetCurrentUser is the API method behind GetUser.
const methodGetCurrentUser = "users.getCurrentUser"

// Endpoints groups the URLs the client talks to. The embedded oauth2.Endpoint
// carries the login page (AuthURL) and the token exchange (TokenURL); APIURL
// receives every signed method call.
type Endpoints struct {
	oauth2.Endpoint
	APIURL string
}

// DefaultEndpoints returns the production Odnoklassniki endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Endpoint: oauth2.Endpoint{
			AuthURL:  DefaultLoginURL,
			TokenURL: DefaultTokenURL,
		},
		APIURL: DefaultAPIURL,
	}
}

// Client talks to the Odnoklassniki OAuth and REST API.
//
// A Client is meant for sequential use. Authenticate replaces the access
// token in place, so callers sharing one Client across goroutines must
// serialize Authenticate against other calls themselves.
type Client struct {
	clientID       string
	applicationKey string
	clientSecret   string
	scope          []string
	redirectURI    string

	accessToken  string
	refreshToken string
	tokenType    string
	expiry       time.Time

	httpClient *http.Client
	header     http.Header
	logger     Logger
	endpoints  Endpoints
}

// New creates a Client. No field is validated; bad credentials surface as
// API errors on the first remote call.
func New(clientID, applicationKey, clientSecret string, scope []string, opts ...Option) *Client {
	cfg := newClientConfig(opts...)

	return &Client{
		clientID:       clientID,
		applicationKey: applicationKey,
		clientSecret:   clientSecret,
		scope:          append([]string(nil), scope...),
		redirectURI:    cfg.redirectURI,
		accessToken:    cfg.accessToken,
		refreshToken:   cfg.refreshToken,
		httpClient:     cfg.httpClient,
		header:         cfg.header,
		logger:         cfg.logger,
		endpoints:      cfg.endpoints,
	}
}

// SetRedirectURI sets the URL the user is sent back to after login and
// returns c for chaining.
func (c *Client) SetRedirectURI(uri string) *Client {
	c.redirectURI = uri
	return c
}

// RedirectURI returns the configured redirect URI.
func (c *Client) RedirectURI() string {
	return c.redirectURI
}

// AccessToken returns the current access token.
func (c *Client) AccessToken() string {
	return c.accessToken
}

// RefreshToken returns the refresh token supplied at construction or by the
// last token exchange.
func (c *Client) RefreshToken() string {
	return c.refreshToken
}

// Endpoints returns the endpoints the client is configured with.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// Token returns the current credentials as an oauth2.Token.
// Expiry is zero unless the last exchange reported expires_in.
func (c *Client) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.accessToken,
		TokenType:    c.tokenType,
		RefreshToken: c.refreshToken,
		Expiry:       c.expiry,
	}
}

// LoginURL returns the authorization URL the user should be redirected to.
// The query carries client_id, response_type=code and redirect_uri, then
// scope as a comma-joined list when any scope is configured, then the
// parameters added by opts. redirect_uri is left out while no redirect URI
// is set.
func (c *Client) LoginURL(opts ...AuthOption) string {
	ac := newAuthConfig(opts...)

	parts := []string{
		"client_id=" + url.QueryEscape(c.clientID),
		"response_type=code",
	}
	if c.redirectURI != "" {
		parts = append(parts, "redirect_uri="+url.QueryEscape(c.redirectURI))
	}
	if len(c.scope) > 0 {
		parts = append(parts, "scope="+url.QueryEscape(strings.Join(c.scope, ",")))
	}
	if ac.layout != "" {
		parts = append(parts, "layout="+url.QueryEscape(ac.layout))
	}
	if ac.state != "" {
		parts = append(parts, "state="+url.QueryEscape(ac.state))
	}

	return c.endpoints.AuthURL + "?" + strings.Join(parts, "&")
}

// Authenticate exchanges an authorization code for an access token and
// stores it on the client. The current token is left untouched on failure.
// A response without access_token is an ErrKindProtocol error.
// As with LoginURL, an unset redirect URI is not sent.
func (c *Client) Authenticate(ctx context.Context, code string) error {
	params := url.Values{
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}
	if c.redirectURI != "" {
		params.Set("redirect_uri", c.redirectURI)
	}

	resp, err := c.post(ctx, c.endpoints.TokenURL, params)
	if err != nil {
		return err
	}

	accessToken, _ := resp["access_token"].(string)
	if accessToken == "" {
		return newAPIError(ErrKindProtocol, "missing access_token in token response", 0, nil)
	}

	c.accessToken = accessToken
	if refreshToken, _ := resp["refresh_token"].(string); refreshToken != "" {
		c.refreshToken = refreshToken
	}
	c.tokenType, _ = resp["token_type"].(string)
	c.expiry = time.Time{}
	if expiresIn := resp.Int("expires_in"); expiresIn > 0 {
		c.expiry = time.Now().Add(time.Duration(expiresIn) * time.Second)
	}

	c.logger.Debug("odnoklassniki token exchanged",
		"token_type", c.tokenType,
		"has_refresh_token", c.refreshToken != "",
	)

	return nil
}

// Sign returns the sig parameter for calling method with params using the
// client's current access token and secret.
func (c *Client) Sign(method string, params url.Values) string {
	return Signature(c.applicationKey, c.accessToken, c.clientSecret, method, params)
}

// Call invokes an API method with the given extra parameters and returns the
// decoded JSON object. params may be nil. access_token, application_key,
// method and sig are set by the client and override entries in params.
// A parameter with several values is sent as a comma-separated list.
func (c *Client) Call(ctx context.Context, method string, params url.Values) (Response, error) {
	return c.post(ctx, c.endpoints.APIURL, c.signedParams(method, params))
}

// CallInto invokes an API method like Call and decodes the result into v.
// Use it for methods whose result is a JSON array or maps onto a struct.
func (c *Client) CallInto(ctx context.Context, method string, params url.Values, v any) error {
	body, err := doPost(ctx, c.httpClient, c.endpoints.APIURL, c.signedParams(method, params), c.header, c.logger)
	if err != nil {
		return err
	}
	if _, err := decodeBody(body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return newAPIError(ErrKindParse, responseParseError, 0, err)
	}
	return nil
}

// GetUser returns the profile of the user owning the current access token
// as reported by users.getCurrentUser.
func (c *Client) GetUser(ctx context.Context) (Response, error) {
	return c.Call(ctx, methodGetCurrentUser, nil)
}

// signedParams copies params and adds the authentication parameters.
// Multi-valued parameters are sent as one comma-joined value so the request
// carries exactly what was signed.
func (c *Client) signedParams(method string, params url.Values) url.Values {
	out := make(url.Values, len(params)+4)
	for k, vs := range params {
		out.Set(k, strings.Join(vs, ","))
	}
	out.Del("sig")
	out.Del("access_token")
	out.Set("application_key", c.applicationKey)
	out.Set("method", method)
	out.Set("sig", c.Sign(method, out))
	out.Set("access_token", c.accessToken)
	return out
}

// post is the single path every remote interaction goes through.
func (c *Client) post(ctx context.Context, endpoint string, params url.Values) (Response, error) {
	body, err := doPost(ctx, c.httpClient, endpoint, params, c.header, c.logger)
	if err != nil {
		return nil, err
	}
	return decodeResponse(body)
}
