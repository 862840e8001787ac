// Package codec turns a page.ShareableData envelope into a URL-safe token
// and back. A token is the base64url (unpadded) form of the query-escaped
// JSON encoding of the envelope, so it can travel as a single path segment.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/eringen/pagesmith/page"
)

var encoding = base64.RawURLEncoding.Strict()

// EncodingError reports that an envelope could not be turned into a token
// that decodes back to the same value.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return "codec: encode share data: " + e.Err.Error()
}

func (e *EncodingError) Unwrap() error { return e.Err }

// DecodingError reports a token that is not valid base64, not a valid
// escaped UTF-8 string, not parseable, or structurally invalid.
type DecodingError struct {
	Stage string
	Err   error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("codec: decode share token (%s): %v", e.Stage, e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }

// Encode serializes data into a share token. The token is verified to decode
// back to a value deep-equal to data; values that do not survive the trip
// (for example strings holding invalid UTF-8) yield an *EncodingError.
func Encode(data page.ShareableData) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", &EncodingError{Err: err}
	}
	token := encoding.EncodeToString([]byte(url.QueryEscape(string(b))))

	back, err := Decode(token)
	if err != nil {
		return "", &EncodingError{Err: err}
	}
	if !reflect.DeepEqual(back, data) {
		return "", &EncodingError{Err: fmt.Errorf("value does not survive the round trip")}
	}
	return token, nil
}

// Decode reverses Encode. The decoded text is structurally validated before
// it is unmarshalled; any failure is returned as a *DecodingError.
func Decode(token string) (page.ShareableData, error) {
	var data page.ShareableData

	raw, err := encoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return data, &DecodingError{Stage: "base64", Err: err}
	}
	text, err := url.QueryUnescape(string(raw))
	if err != nil {
		return data, &DecodingError{Stage: "unescape", Err: err}
	}
	if !utf8.ValidString(text) {
		return data, &DecodingError{Stage: "unescape", Err: fmt.Errorf("not valid UTF-8")}
	}
	var candidate any
	if err := json.Unmarshal([]byte(text), &candidate); err != nil {
		return data, &DecodingError{Stage: "parse", Err: err}
	}
	if !Validate(candidate) {
		return data, &DecodingError{Stage: "validate", Err: fmt.Errorf("missing or mistyped envelope fields")}
	}
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return page.ShareableData{}, &DecodingError{Stage: "parse", Err: err}
	}
	return data, nil
}

// Validate reports whether candidate, a value produced by json.Unmarshal into
// an interface, has the shape of a share envelope: a sections list, theme and
// formData objects, a numeric timestamp and a string version.
func Validate(candidate any) bool {
	m, ok := candidate.(map[string]any)
	if !ok {
		return false
	}
	if _, ok := m["sections"].([]any); !ok {
		return false
	}
	if _, ok := m["theme"].(map[string]any); !ok {
		return false
	}
	if _, ok := m["formData"].(map[string]any); !ok {
		return false
	}
	if _, ok := m["timestamp"].(float64); !ok {
		return false
	}
	_, ok = m["version"].(string)
	return ok
}
