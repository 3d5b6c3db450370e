package odnoklassniki

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// md5Hex returns the lowercase hexadecimal MD5 digest of s.
func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Signature computes the sig parameter for a method call.
//
// The signed string is every request parameter except access_token and sig,
// sorted by key and written as "key=value" with no separators, followed by
// md5(accessToken + clientSecret). The result is the MD5 of that string.
// A parameter with several values is signed as its comma-joined list, which
// is how Call sends it.
// For a call with no extra parameters this is
//
//	md5("application_key=" + applicationKey + "method=" + method + md5(accessToken + clientSecret))
func Signature(applicationKey, accessToken, clientSecret, method string, params url.Values) string {
	signed := make(map[string]string, len(params)+2)
	for k := range params {
		if k == "access_token" || k == "sig" {
			continue
		}
		signed[k] = strings.Join(params[k], ",")
	}
	signed["application_key"] = applicationKey
	signed["method"] = method

	return md5Hex(buildSignContent(signed) + md5Hex(accessToken+clientSecret))
}

// buildSignContent sorts the parameters by key and concatenates them as
// "key1=value1key2=value2...".
func buildSignContent(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf strings.Builder
	for _, k := range keys {
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(params[k])
	}
	return buf.String()
}
