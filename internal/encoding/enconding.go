// Package encoding defines functions to encode and decode binary data
// in base64url format with no padding as specified in RFC 7515 section 2
// (https://datatracker.ietf.org/doc/html/rfc7515#section-2)
package encoding

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrBadEncoding is returned when a given string is not valid base64url data.
var ErrBadEncoding = errors.New("bad encoding")

var enc = base64.URLEncoding.WithPadding(base64.NoPadding)

// std maps the two characters of the standard base64 alphabet onto their
// base64url counterparts. RFC 4648 section 5 differs from the standard
// alphabet only in these two characters.
var std = strings.NewReplacer("+", "-", "/", "_")

// Encode encodes the given data using base64url encoding with no padding.
func Encode(data []byte) string {
	return enc.EncodeToString(data)
}

// Decode decodes the given base64url encoded string. Input using the
// standard base64 alphabet is accepted as well. Any other character and any
// impossible input length produce an error wrapping ErrBadEncoding.
func Decode(data string) ([]byte, error) {
	b, err := enc.DecodeString(std.Replace(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadEncoding, err)
	}

	return b, nil
}
