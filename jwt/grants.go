package jwt

import "fmt"

// Grants are the claims of the token body. Names are case-sensitive. The
// add operations refuse to overwrite an existing member; use DelGrants
// first or merge with AddGrantsJSON to replace values.

// AddGrant adds a string claim.
func (t *Token) AddGrant(name, val string) error {
	return addMember(t.grants, name, val)
}

// AddGrantInt adds an integer claim.
func (t *Token) AddGrantInt(name string, val int64) error {
	return addMember(t.grants, name, val)
}

// AddGrantBool adds a boolean claim.
func (t *Token) AddGrantBool(name string, val bool) error {
	return addMember(t.grants, name, val)
}

// AddGrantsJSON parses src as a JSON object, rejecting duplicate keys, and
// merges its top-level members into the claims. Existing members are
// overwritten. Input that is not a JSON object is an ErrInvalid.
func (t *Token) AddGrantsJSON(src string) error {
	return mergeJSON(t.grants, src)
}

// Grant returns the string claim named name.
func (t *Token) Grant(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalid)
	}

	return getString(t.grants, name)
}

// GrantInt returns the integer claim named name.
func (t *Token) GrantInt(name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrInvalid)
	}

	return getInt(t.grants, name)
}

// GrantBool returns the boolean claim named name.
func (t *Token) GrantBool(name string) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("%w: empty name", ErrInvalid)
	}

	return getBool(t.grants, name)
}

// GrantsJSON returns the claim named name as a compact JSON string with
// sorted keys, or the whole claims object when name is empty.
func (t *Token) GrantsJSON(name string) (string, error) {
	return dumpMember(t.grants, name)
}

// DelGrants removes the claim named name. An empty name removes all
// claims. Removing an absent claim is not an error.
func (t *Token) DelGrants(name string) {
	delMembers(t.grants, name)
}

// DelGrant removes a single claim.
//
// Deprecated: use DelGrants.
func (t *Token) DelGrant(name string) {
	t.DelGrants(name)
}

// --

// AddHeader adds a string header parameter.
func (t *Token) AddHeader(name, val string) error {
	return addMember(t.headers, name, val)
}

// AddHeaderInt adds an integer header parameter.
func (t *Token) AddHeaderInt(name string, val int64) error {
	return addMember(t.headers, name, val)
}

// AddHeaderBool adds a boolean header parameter.
func (t *Token) AddHeaderBool(name string, val bool) error {
	return addMember(t.headers, name, val)
}

// AddHeadersJSON parses src as a JSON object, rejecting duplicate keys,
// and merges its top-level members into the headers. Existing members are
// overwritten.
func (t *Token) AddHeadersJSON(src string) error {
	return mergeJSON(t.headers, src)
}

// Header returns the string header parameter named name.
func (t *Token) Header(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalid)
	}

	return getString(t.headers, name)
}

// HeaderInt returns the integer header parameter named name.
func (t *Token) HeaderInt(name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrInvalid)
	}

	return getInt(t.headers, name)
}

// HeaderBool returns the boolean header parameter named name.
func (t *Token) HeaderBool(name string) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("%w: empty name", ErrInvalid)
	}

	return getBool(t.headers, name)
}

// HeadersJSON returns the header parameter named name as a compact JSON
// string with sorted keys, or the whole header object when name is empty.
// Note that "alg" and "typ" are synthesized during Encode and need not be
// present before.
func (t *Token) HeadersJSON(name string) (string, error) {
	return dumpMember(t.headers, name)
}

// DelHeaders removes the header parameter named name. An empty name
// removes all header parameters.
func (t *Token) DelHeaders(name string) {
	delMembers(t.headers, name)
}
