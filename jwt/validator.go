package jwt

import (
	"fmt"
	"sort"

	"github.com/spinlockirqsave/libjwt/jws"
)

// statusValid is the status after a validation that found nothing wrong.
const statusValid = "Valid JWT"

// replicatedClaims are the claims that may be replicated into the header
// per RFC 7519 section 5.3. When a claim appears in both places the two
// values must be equal.
var replicatedClaims = [...]string{"iss", "sub", "aud"}

// Validator holds the semantic acceptance policy applied to a token after
// it has been cryptographically verified: the expected algorithm, the
// reference time for the temporal claims and a set of required claims. A
// Validator may be reused across tokens; Status always describes the most
// recent validation.
type Validator struct {
	alg       jws.Algorithm
	now       int64
	hdr       bool
	reqGrants map[string]any
	status    string
}

// NewValidator creates a validator that accepts tokens carrying the given
// algorithm.
func NewValidator(alg jws.Algorithm) *Validator {
	return &Validator{
		alg:       alg,
		reqGrants: make(map[string]any),
	}
}

// Alg returns the expected algorithm.
func (v *Validator) Alg() jws.Algorithm {
	return v.alg
}

// SetNow sets the reference time, in seconds since the epoch, for the
// "exp" and "nbf" checks. A zero value disables the temporal checks.
func (v *Validator) SetNow(now int64) {
	v.now = now
}

// SetHeaders sets the header replication policy flag. The flag is reserved
// for selecting which claims must replicate into the header; the fixed set
// of "iss", "sub" and "aud" is checked regardless of its value.
func (v *Validator) SetHeaders(hdr bool) {
	v.hdr = hdr
}

// Headers returns the header replication policy flag.
func (v *Validator) Headers() bool {
	return v.hdr
}

// Status returns a human-readable description of the most recent
// validation outcome. Before the first validation it is empty.
func (v *Validator) Status() string {
	return v.status
}

// --

// AddGrant requires the string claim name to be present with value val.
func (v *Validator) AddGrant(name, val string) error {
	return addMember(v.reqGrants, name, val)
}

// AddGrantInt requires the integer claim name to be present with value val.
func (v *Validator) AddGrantInt(name string, val int64) error {
	return addMember(v.reqGrants, name, val)
}

// AddGrantBool requires the boolean claim name to be present with value val.
func (v *Validator) AddGrantBool(name string, val bool) error {
	return addMember(v.reqGrants, name, val)
}

// AddGrantsJSON parses src as a JSON object, rejecting duplicate keys, and
// merges its top-level members into the required claims.
func (v *Validator) AddGrantsJSON(src string) error {
	return mergeJSON(v.reqGrants, src)
}

// Grant returns the required string claim named name.
func (v *Validator) Grant(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalid)
	}

	return getString(v.reqGrants, name)
}

// GrantInt returns the required integer claim named name.
func (v *Validator) GrantInt(name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrInvalid)
	}

	return getInt(v.reqGrants, name)
}

// GrantBool returns the required boolean claim named name.
func (v *Validator) GrantBool(name string) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("%w: empty name", ErrInvalid)
	}

	return getBool(v.reqGrants, name)
}

// GrantsJSON returns the required claim named name as a compact JSON
// string with sorted keys, or all required claims when name is empty.
func (v *Validator) GrantsJSON(name string) (string, error) {
	return dumpMember(v.reqGrants, name)
}

// DelGrants removes the required claim named name. An empty name removes
// all required claims.
func (v *Validator) DelGrants(name string) {
	delMembers(v.reqGrants, name)
}

// --

// Validate applies the validator's policy to t and reports whether the
// token is acceptable. The checks run in a fixed order and the first
// failure sets Status and ends the validation: algorithm, expiration,
// maturity, header/claim replication, required claims.
//
// A failed check is not an error; the returned error is non-nil only when
// the call itself is malformed (nil token).
func (v *Validator) Validate(t *Token) (bool, error) {
	if t == nil {
		v.status = "Invalid JWT"
		return false, fmt.Errorf("%w: nil token", ErrInvalid)
	}

	if v.alg != t.Alg() {
		v.status = "Algorithm does not match"
		return false, nil
	}

	if v.now != 0 {
		if exp, err := getInt(t.grants, "exp"); err == nil && v.now >= exp {
			v.status = "JWT has expired"
			return false, nil
		}

		if nbf, err := getInt(t.grants, "nbf"); err == nil && v.now < nbf {
			v.status = "JWT has not matured"
			return false, nil
		}
	}

	for _, name := range replicatedClaims {
		hdrVal, inHeader := t.headers[name]
		bodyVal, inBody := t.grants[name]
		if inHeader && inBody && !jsonEqual(hdrVal, bodyVal) {
			v.status = fmt.Sprintf("JWT %q header does not match", name)
			return false, nil
		}
	}

	// Sorted iteration makes the reported failure deterministic when
	// several required claims are unacceptable.
	names := make([]string, 0, len(v.reqGrants))
	for name := range v.reqGrants {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		act, present := t.grants[name]
		if !present {
			v.status = fmt.Sprintf("JWT %q grant is not present", name)
			return false, nil
		}

		if !jsonEqual(v.reqGrants[name], act) {
			v.status = fmt.Sprintf("JWT %q grant does not match", name)
			return false, nil
		}
	}

	v.status = statusValid

	return true, nil
}
