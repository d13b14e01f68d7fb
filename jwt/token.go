package jwt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spinlockirqsave/libjwt/internal/encoding"
	"github.com/spinlockirqsave/libjwt/jws"
)

var (
	// ErrInvalid is returned when a caller violates a precondition, such
	// as an empty member name or key material that does not fit the
	// selected algorithm.
	ErrInvalid = errors.New("invalid argument")

	// ErrExists is returned when an add operation collides with a member
	// that is already present.
	ErrExists = errors.New("member already exists")

	// ErrNotFound is returned when a get operation targets an absent member.
	ErrNotFound = errors.New("member not found")

	// ErrWrongType is returned when a typed get operation targets a member
	// holding a value of a different type.
	ErrWrongType = errors.New("member has wrong type")

	// ErrBadToken is returned when a compact token is structurally broken
	// or its header is incoherent with the supplied key.
	ErrBadToken = errors.New("bad token")

	// ErrBadSignature is returned when cryptographic verification of a
	// compact token fails.
	ErrBadSignature = errors.New("bad signature")
)

// Token is a JWT under construction or the result of decoding one. A zero
// Token is not usable; create instances with New or Decode. A Token holds
// its header and claim objects exclusively and is not safe for concurrent
// mutation.
type Token struct {
	alg     jws.Algorithm
	key     jws.Key
	headers map[string]any
	grants  map[string]any
}

// New creates an empty unsecured token.
func New() *Token {
	return &Token{
		alg:     jws.ALG_NONE,
		headers: make(map[string]any),
		grants:  make(map[string]any),
	}
}

// Alg returns the token's signature algorithm.
func (t *Token) Alg() jws.Algorithm {
	return t.alg
}

// SetAlg selects the signature algorithm and installs the key material for
// it. Any previously held key is scrubbed first, no matter the outcome.
// ALG_NONE requires key to be absent, every other algorithm requires key
// material of the matching family (see jws.Key). Byte secrets are copied;
// asymmetric key handles are shared with the caller.
func (t *Token) SetAlg(alg jws.Algorithm, key jws.Key) error {
	t.scrubKey()

	if !alg.Valid() {
		return fmt.Errorf("%w: unknown algorithm %d", ErrInvalid, alg)
	}

	if alg == jws.ALG_NONE {
		if !keyEmpty(key) {
			return fmt.Errorf("%w: %s takes no key", ErrInvalid, alg)
		}
		return nil
	}

	if keyEmpty(key) {
		return fmt.Errorf("%w: %s requires a key", ErrInvalid, alg)
	}

	if err := jws.CheckKey(alg, key); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}

	t.alg = alg
	t.key = copyKey(key)

	return nil
}

// Close scrubs the token's key material. The token may be reused afterwards
// as an unsecured token.
func (t *Token) Close() {
	t.scrubKey()
}

// scrubKey overwrites any byte secret with zeros before dropping it and
// resets the algorithm to ALG_NONE.
func (t *Token) scrubKey() {
	if secret, ok := t.key.([]byte); ok {
		for i := range secret {
			secret[i] = 0
		}
	}

	t.key = nil
	t.alg = jws.ALG_NONE
}

// Clone returns a deep copy of t. Byte secrets are copied; asymmetric key
// handles are shared between the two tokens.
func (t *Token) Clone() *Token {
	return &Token{
		alg:     t.alg,
		key:     copyKey(t.key),
		headers: deepCopyValue(t.headers).(map[string]any),
		grants:  deepCopyValue(t.grants).(map[string]any),
	}
}

func keyEmpty(key jws.Key) bool {
	switch k := key.(type) {
	case nil:
		return true
	case []byte:
		return len(k) == 0
	default:
		return false
	}
}

func copyKey(key jws.Key) jws.Key {
	if secret, ok := key.([]byte); ok {
		dup := make([]byte, len(secret))
		copy(dup, secret)
		return dup
	}

	return key
}

// --

// writeHead serializes the header object for output. The "alg" member is
// forced to the canonical algorithm name and, for any secured algorithm,
// "typ" is forced to "JWT". The token's own header object stays untouched.
func (t *Token) writeHead(pretty bool) (string, error) {
	head := make(map[string]any, len(t.headers)+2)
	for k, v := range t.headers {
		head[k] = v
	}

	head["alg"] = t.alg.String()
	if t.alg != jws.ALG_NONE {
		head["typ"] = "JWT"
	}

	return dumpJSON(head, pretty)
}

// Encode serializes the token in compact serialization as specified in
// RFC 7515 section 7.1
// (https://datatracker.ietf.org/doc/html/rfc7515#section-7.1). For
// ALG_NONE the signature part is empty and the output ends with the second
// dot.
func (t *Token) Encode() (string, error) {
	head, err := t.writeHead(false)
	if err != nil {
		return "", err
	}

	body, err := dumpJSON(t.grants, false)
	if err != nil {
		return "", err
	}

	signingInput := encoding.Encode([]byte(head)) + "." + encoding.Encode([]byte(body))

	if t.alg == jws.ALG_NONE {
		return signingInput + ".", nil
	}

	sig, err := jws.Sign(t.alg, t.key, []byte(signingInput))
	if err != nil {
		return "", err
	}

	return signingInput + "." + encoding.Encode(sig), nil
}

// DumpString renders the header and claim objects joined with a dot,
// without base64url encoding and without a signature. The header is
// synthesized the same way Encode does it. With pretty set both objects
// are indented.
func (t *Token) DumpString(pretty bool) (string, error) {
	head, err := t.writeHead(pretty)
	if err != nil {
		return "", err
	}

	body, err := dumpJSON(t.grants, pretty)
	if err != nil {
		return "", err
	}

	if pretty {
		return "\n" + head + "\n.\n" + body + "\n", nil
	}

	return head + "." + body, nil
}

// Dump writes the output of DumpString to w.
func (t *Token) Dump(w io.Writer, pretty bool) error {
	s, err := t.DumpString(pretty)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, s)
	return err
}

// --

// Decode parses a compact serialized token, checks header coherence
// against the supplied key material and verifies the signature over the
// original input bytes. The algorithm is taken from the token's "alg"
// header: ALG_NONE demands an absent key, every other algorithm demands
// key material of the matching family. This binding of key presence to
// algorithm blocks the classic "alg: none" downgrade.
//
// Structural and coherence failures are reported as ErrBadToken, failed
// verification as ErrBadSignature.
func Decode(token string, key jws.Key) (*Token, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: invalid number of parts", ErrBadToken)
	}

	headJSON, err := encoding.Decode(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: header: %s", ErrBadToken, err)
	}

	headers, err := parseObject(string(headJSON), false)
	if err != nil {
		return nil, fmt.Errorf("%w: header: %s", ErrBadToken, err)
	}

	algName, err := getString(headers, "alg")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadToken, err)
	}

	alg := jws.ParseAlgorithm(algName)
	if alg == jws.ALG_INVALID {
		return nil, fmt.Errorf("%w: unknown algorithm %q", ErrBadToken, algName)
	}

	if alg == jws.ALG_NONE {
		if !keyEmpty(key) {
			return nil, fmt.Errorf("%w: unsecured token must not be given a key", ErrBadToken)
		}
	} else {
		if typ, present := headers["typ"]; present {
			s, ok := typ.(string)
			if !ok || !strings.EqualFold(s, "JWT") {
				return nil, fmt.Errorf("%w: invalid \"typ\" header: %v", ErrBadToken, typ)
			}
		}
		if keyEmpty(key) {
			return nil, fmt.Errorf("%w: %s token requires a key", ErrBadToken, alg)
		}
		if err := jws.CheckKey(alg, key); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadToken, err)
		}
	}

	bodyJSON, err := encoding.Decode(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: claims: %s", ErrBadToken, err)
	}

	grants, err := parseObject(string(bodyJSON), false)
	if err != nil {
		return nil, fmt.Errorf("%w: claims: %s", ErrBadToken, err)
	}

	t := &Token{
		alg:     alg,
		headers: headers,
		grants:  grants,
	}

	if alg != jws.ALG_NONE {
		sig, err := encoding.Decode(parts[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadSignature, err)
		}

		// Verification covers the bytes the caller provided. Re-encoding
		// the parsed objects would not in general reproduce them.
		signingInput := parts[0] + "." + parts[1]
		if err := jws.Verify(alg, key, []byte(signingInput), sig); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadSignature, err)
		}

		t.key = copyKey(key)
	}

	return t, nil
}

// DecodeWithAlg decodes like Decode and additionally demands that the
// token declares the expected algorithm. A mismatch is an ErrBadToken.
func DecodeWithAlg(token string, key jws.Key, alg jws.Algorithm) (*Token, error) {
	t, err := Decode(token, key)
	if err != nil {
		return nil, err
	}

	if t.alg != alg {
		t.Close()
		return nil, fmt.Errorf("%w: token algorithm %s, expected %s", ErrBadToken, t.alg, alg)
	}

	return t, nil
}
