package odnoklassniki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// newDefaultHTTPClient returns a new http.Client with a default timeout of 10 seconds.
func newDefaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

// maskURL masks sensitive query parameter values in a URL for safe logging.
// Parameter values whose keys match sensitive substrings (token, secret, key, sig, etc.)
// are masked using the same rules as maskSensitive.
// If the URL cannot be parsed, it is returned unchanged.
func maskURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if len(q) == 0 {
		return rawURL
	}
	// Asterisks are left unescaped so the logged URL stays readable.
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var parts []string
	for _, key := range keys {
		for _, v := range q[key] {
			escapedValue := url.QueryEscape(maskSensitive(key, v))
			escapedValue = strings.ReplaceAll(escapedValue, "%2A", "*")
			parts = append(parts, url.QueryEscape(key)+"="+escapedValue)
		}
	}
	u.RawQuery = strings.Join(parts, "&")
	return u.String()
}

// maxResponseSize is the upper limit on HTTP response bodies read by readBody.
const maxResponseSize = 1 << 20 // 1 MB

// readBody reads the response body (up to maxResponseSize bytes) and closes it.
func readBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
}

// withQuery returns endpoint with params merged into its query string.
func withQuery(endpoint string, params url.Values) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, vs := range params {
		q[k] = append([]string(nil), vs...)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// doPost sends params to endpoint twice over: in the URL query string and
// as an application/x-www-form-urlencoded body. The API reads either.
// header is copied onto the request before the fixed Accept: application/json.
// On success (2xx), it returns the response body.
// On failure, it returns an *APIError with Kind ErrKindTransport.
func doPost(ctx context.Context, client *http.Client, endpoint string, params url.Values, header http.Header, logger Logger) ([]byte, error) {
	rawURL, err := withQuery(endpoint, params)
	if err != nil {
		return nil, newAPIError(ErrKindTransport, fmt.Sprintf("POST %s: %v", maskURL(endpoint), err), 0, err)
	}
	masked := maskURL(rawURL)
	logger.Debug("HTTP request", "method", "POST", "url", masked)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, newAPIError(ErrKindTransport, fmt.Sprintf("POST %s: %v", masked, err), 0, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return nil, newAPIError(ErrKindTransport, fmt.Sprintf("POST %s: %v", masked, err), 0, err)
	}

	logger.Debug("HTTP response", "method", "POST", "url", masked, "status", resp.StatusCode)

	body, err := readBody(resp)
	if err != nil {
		return nil, newAPIError(ErrKindTransport, fmt.Sprintf("HTTP %d, POST %s: read body: %v", resp.StatusCode, masked, err), 0, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return nil, newAPIError(ErrKindTransport, fmt.Sprintf("HTTP %d, POST %s: %s", resp.StatusCode, masked, preview), 0, nil)
	}

	return body, nil
}
