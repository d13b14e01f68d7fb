package jwt

import "github.com/google/uuid"

const (
	// The "iss" (issuer) claim identifies the principal that issued the
	// JWT. The "iss" value is a case-sensitive string containing a
	// StringOrURI value. Use of this claim is OPTIONAL.
	// (https://datatracker.ietf.org/doc/html/rfc7519#section-4.1.1)
	ClaimIssuer = "iss"

	// The "sub" (subject) claim identifies the principal that is the
	// subject of the JWT. The claims in a JWT are normally statements
	// about the subject. Use of this claim is OPTIONAL.
	// (https://datatracker.ietf.org/doc/html/rfc7519#section-4.1.2)
	ClaimSubject = "sub"

	// The "aud" (audience) claim identifies the recipients that the JWT
	// is intended for. In the general case, the "aud" value is an array
	// of case-sensitive strings; in the special case when the JWT has one
	// audience, the "aud" value MAY be a single case-sensitive string.
	// Use of this claim is OPTIONAL.
	// (https://datatracker.ietf.org/doc/html/rfc7519#section-4.1.3)
	ClaimAudience = "aud"

	// The "exp" (expiration time) claim identifies the expiration time on
	// or after which the JWT MUST NOT be accepted for processing. Its
	// value MUST be a number containing a NumericDate value. Use of this
	// claim is OPTIONAL.
	// (https://datatracker.ietf.org/doc/html/rfc7519#section-4.1.4)
	ClaimExpirationTime = "exp"

	// The "nbf" (not before) claim identifies the time before which the
	// JWT MUST NOT be accepted for processing. Its value MUST be a number
	// containing a NumericDate value. Use of this claim is OPTIONAL.
	// (https://datatracker.ietf.org/doc/html/rfc7519#section-4.1.5)
	ClaimNotBefore = "nbf"

	// The "iat" (issued at) claim identifies the time at which the JWT
	// was issued. Its value MUST be a number containing a NumericDate
	// value. Use of this claim is OPTIONAL.
	// (https://datatracker.ietf.org/doc/html/rfc7519#section-4.1.6)
	ClaimIssuedAt = "iat"

	// The "jti" (JWT ID) claim provides a unique identifier for the JWT.
	// The identifier value MUST be assigned in a manner that ensures that
	// there is a negligible probability that the same value will be
	// accidentally assigned to a different data object. Use of this claim
	// is OPTIONAL.
	// (https://datatracker.ietf.org/doc/html/rfc7519#section-4.1.7)
	ClaimID = "jti"
)

// NewID returns a random RFC 4122 identifier suitable as a value for the
// "jti" claim.
func NewID() string {
	return uuid.NewString()
}
