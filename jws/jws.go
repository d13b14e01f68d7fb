// Package jws implements the signature algorithms of JSON Web Signature
// as defined in RFC 7515 (https://datatracker.ietf.org/doc/html/rfc7515)
// as well as the parts of JSON Web Algorithms (jwa) defined in RFC 7518
// (https://www.rfc-editor.org/rfc/rfc7518.html) that apply to signing.
package jws

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidAlgorithm is returned when an algorithm identifier is not a
	// member of the supported set.
	ErrInvalidAlgorithm = errors.New("invalid algorithm")

	// ErrKeyMismatch is returned when key material does not have the shape
	// the algorithm family requires.
	ErrKeyMismatch = errors.New("key does not match algorithm")

	// ErrCrypto is returned when the crypto backend signals an operational
	// failure while producing a signature.
	ErrCrypto = errors.New("crypto failure")

	// ErrInvalidSignature is returned when a signature does not verify.
	ErrInvalidSignature = errors.New("invalid signature")
)

// Algorithm enumerates the signature algorithms defined in RFC 7518
// section 3.1 (https://www.rfc-editor.org/rfc/rfc7518.html#section-3.1).
type Algorithm int

const (
	// No digital signature or MAC
	ALG_NONE Algorithm = iota

	// HMAC using SHA-256
	ALG_HS256

	// HMAC using SHA-384
	ALG_HS384

	// HMAC using SHA-512
	ALG_HS512

	// RSASSA-PKCS1-v1_5 using SHA-256
	ALG_RS256

	// RSASSA-PKCS1-v1_5 using SHA-384
	ALG_RS384

	// RSASSA-PKCS1-v1_5 using SHA-512
	ALG_RS512

	// ECDSA using P-256 and SHA-256
	ALG_ES256

	// ECDSA using P-384 and SHA-384
	ALG_ES384

	// ECDSA using P-521 and SHA-512
	ALG_ES512

	// ALG_INVALID marks the end of the algorithm set. It is the result of
	// parsing an unknown algorithm name.
	ALG_INVALID
)

var algNames = [...]string{
	ALG_NONE:  "none",
	ALG_HS256: "HS256",
	ALG_HS384: "HS384",
	ALG_HS512: "HS512",
	ALG_RS256: "RS256",
	ALG_RS384: "RS384",
	ALG_RS512: "RS512",
	ALG_ES256: "ES256",
	ALG_ES384: "ES384",
	ALG_ES512: "ES512",
}

// String returns the canonical name of a as used in the "alg" header
// parameter. It returns an empty string for ALG_INVALID and any other
// out-of-range value.
func (a Algorithm) String() string {
	if !a.Valid() {
		return ""
	}

	return algNames[a]
}

// Valid reports whether a is a member of the supported algorithm set.
func (a Algorithm) Valid() bool {
	return a >= ALG_NONE && a < ALG_INVALID
}

// ParseAlgorithm maps an algorithm name to its Algorithm value. Names are
// matched case-insensitively. Unknown names map to ALG_INVALID.
func ParseAlgorithm(name string) Algorithm {
	for alg, s := range algNames {
		if strings.EqualFold(name, s) {
			return Algorithm(alg)
		}
	}

	return ALG_INVALID
}

// --

// Key holds opaque key material for an algorithm family:
//
//	HMAC   []byte (the raw shared secret)
//	RSA    *rsa.PrivateKey (sign or verify) or *rsa.PublicKey (verify)
//	ECDSA  *ecdsa.PrivateKey (sign or verify) or *ecdsa.PublicKey (verify)
//	none   nil
//
// Ownership of the key material remains with the caller.
type Key any

// CheckKey reports whether key has the shape required by alg's family. It
// returns nil or an error wrapping ErrKeyMismatch (ErrInvalidAlgorithm for
// an out-of-range alg).
func CheckKey(alg Algorithm, key Key) error {
	switch alg {
	case ALG_NONE:
		if key != nil {
			return fmt.Errorf("%w: %s takes no key", ErrKeyMismatch, alg)
		}
	case ALG_HS256, ALG_HS384, ALG_HS512:
		secret, ok := key.([]byte)
		if !ok || len(secret) == 0 {
			return fmt.Errorf("%w: %s requires a non-empty byte secret", ErrKeyMismatch, alg)
		}
	case ALG_RS256, ALG_RS384, ALG_RS512:
		switch key.(type) {
		case *rsa.PrivateKey, *rsa.PublicKey:
		default:
			return fmt.Errorf("%w: %s requires an RSA key", ErrKeyMismatch, alg)
		}
	case ALG_ES256, ALG_ES384, ALG_ES512:
		switch key.(type) {
		case *ecdsa.PrivateKey, *ecdsa.PublicKey:
		default:
			return fmt.Errorf("%w: %s requires an ECDSA key", ErrKeyMismatch, alg)
		}
	default:
		return fmt.Errorf("%w: %d", ErrInvalidAlgorithm, alg)
	}

	return nil
}

// --

// Signer defines the interface for types implementing
// a given signature method for signing byte slices.
type Signer interface {
	// Alg returns the signature algorithm as defined in
	// RFC 7518 section 3.1
	// (https://www.rfc-editor.org/rfc/rfc7518.html#section-3.1)
	Alg() Algorithm

	// Sign calculates the signature or MAC for the given byte slice and
	// returns the signature bytes in JWS wire form.
	Sign(data []byte) ([]byte, error)
}

// Verifier defines the interface for types verifying signatures.
type Verifier interface {
	// Verify is called to verify the given signature for the given data.
	// Implementations return nil in case of a valid signature or a non-nil
	// error. Implementations MUST NOT modify neither data nor signature.
	Verify(alg Algorithm, data []byte, signature []byte) error
}

// SignerVerifier is the combination of both Signer and Verifier. It is
// used for symmetric signatures (i.e. MACs).
type SignerVerifier interface {
	Signer
	Verifier
}

// --

// Sign dispatches to the signature primitive selected by alg and produces
// the signature for data in JWS wire form: the raw MAC for HMAC
// algorithms, the PKCS#1 signature for RSA algorithms, the fixed-width
// r||s concatenation for ECDSA algorithms and an empty slice for none.
func Sign(alg Algorithm, key Key, data []byte) ([]byte, error) {
	signer, err := signerFor(alg, key)
	if err != nil {
		return nil, err
	}

	return signer.Sign(data)
}

// Verify dispatches to the verification primitive selected by alg and
// checks signature against data. Any failure, operational or
// cryptographic, is reported as an error wrapping ErrInvalidSignature;
// ErrKeyMismatch and ErrInvalidAlgorithm are reported for unusable input.
func Verify(alg Algorithm, key Key, data, signature []byte) error {
	verifier, err := verifierFor(alg, key)
	if err != nil {
		return err
	}

	return verifier.Verify(alg, data, signature)
}

func signerFor(alg Algorithm, key Key) (Signer, error) {
	if err := CheckKey(alg, key); err != nil {
		return nil, err
	}

	switch alg {
	case ALG_NONE:
		return None(), nil
	case ALG_HS256, ALG_HS384, ALG_HS512:
		return HSSignerVerifier(alg, key.([]byte))
	case ALG_RS256, ALG_RS384, ALG_RS512:
		privateKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: signing with %s requires a private key", ErrKeyMismatch, alg)
		}
		return RSSigner(alg, privateKey)
	default:
		privateKey, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: signing with %s requires a private key", ErrKeyMismatch, alg)
		}
		return ESSigner(alg, privateKey)
	}
}

func verifierFor(alg Algorithm, key Key) (Verifier, error) {
	if err := CheckKey(alg, key); err != nil {
		return nil, err
	}

	switch alg {
	case ALG_NONE:
		return None(), nil
	case ALG_HS256, ALG_HS384, ALG_HS512:
		return HSSignerVerifier(alg, key.([]byte))
	case ALG_RS256, ALG_RS384, ALG_RS512:
		publicKey, ok := key.(*rsa.PublicKey)
		if !ok {
			publicKey = &key.(*rsa.PrivateKey).PublicKey
		}
		return RSVerifier(alg, publicKey)
	default:
		publicKey, ok := key.(*ecdsa.PublicKey)
		if !ok {
			publicKey = &key.(*ecdsa.PrivateKey).PublicKey
		}
		return ESVerifier(alg, publicKey)
	}
}

// --

// None returns a signature method that creates no signature.
// Use this method to create unsecured JWTs as specified in
// RFC 7519 section 6 (https://datatracker.ietf.org/doc/html/rfc7519#section-6)
func None() SignerVerifier {
	return noneSignatureMethod{}
}

type noneSignatureMethod struct{}

func (noneSignatureMethod) Alg() Algorithm {
	return ALG_NONE
}

func (noneSignatureMethod) Sign(data []byte) ([]byte, error) {
	return []byte{}, nil
}

func (noneSignatureMethod) Verify(alg Algorithm, data, signature []byte) error {
	if alg != ALG_NONE {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, "invalid algorithm")
	}

	if len(signature) != 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, "unsecured token carries a signature")
	}

	return nil
}
