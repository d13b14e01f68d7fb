// Package libjwt provides creation, serialization, parsing, verification
// and validation of JSON Web Tokens in compact serialization as defined in
// RFC 7519 (https://datatracker.ietf.org/doc/html/rfc7519).
//
// The jwt package holds the token and validator types. The jws package
// implements the signature algorithms defined in RFC 7518.
package libjwt
