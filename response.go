package odnoklassniki

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Response is a decoded JSON object returned by a successful API call.
type Response map[string]any

// String returns the value at key as a string. Numbers are formatted without
// a fractional part when they are integral; other types yield "".
func (r Response) String(key string) string {
	return toString(r[key])
}

// Int returns the value at key as an int, or 0 when it is absent or not numeric.
func (r Response) Int(key string) int {
	return toInt(r[key])
}

// decodeBody parses body and applies the response checks in order:
// undecodable or empty JSON is a parse error, then a non-empty
// error_code together with a non-empty error_msg is an API error.
// Any other JSON value is returned as decoded. Numbers are kept as
// json.Number so 64-bit identifiers survive intact.
func decodeBody(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, newAPIError(ErrKindParse, responseParseError, 0, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, newAPIError(ErrKindParse, responseParseError, 0, fmt.Errorf("trailing data after JSON value"))
	}
	if isEmpty(v) {
		return nil, newAPIError(ErrKindParse, responseParseError, 0, nil)
	}
	if obj, ok := v.(map[string]any); ok {
		code, msg := obj["error_code"], obj["error_msg"]
		if !isEmpty(code) && !isEmpty(msg) {
			return nil, newAPIError(ErrKindAPI, toString(msg), toInt(code), nil)
		}
	}
	return v, nil
}

// decodeResponse is decodeBody restricted to JSON objects. A valid
// non-object value cannot be represented as a Response and is reported
// as a parse error.
func decodeResponse(body []byte) (Response, error) {
	v, err := decodeBody(body)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, newAPIError(ErrKindParse, responseParseError, 0, fmt.Errorf("unexpected JSON %T", v))
	}
	return Response(obj), nil
}

// isEmpty reports whether a decoded JSON value counts as empty:
// null, false, zero, "", "0", an empty array or an empty object.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case string:
		return t == "" || t == "0"
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

// toInt converts a decoded JSON value (float64, json.Number or numeric string) to int.
func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		f, _ := n.Float64()
		return int(f)
	case int:
		return n
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}

// toString converts a decoded JSON scalar to a string.
func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}
