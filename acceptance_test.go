package libjwt_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/spinlockirqsave/libjwt/jws"
	"github.com/spinlockirqsave/libjwt/jwt"
)

const grantsJSON = `{"aud":["github.com/spinlockirqsave/libjwt"],"iss":"github.com/spinlockirqsave/libjwt","nbf":1000,"exp":4000000000,"sub":"john.doe"}`

func buildToken(t *testing.T) *jwt.Token {
	t.Helper()

	token := jwt.New()
	if err := token.AddGrantsJSON(grantsJSON); err != nil {
		t.Fatal(err)
	}

	return token
}

func runRoundTrip(t *testing.T, token *jwt.Token, key jws.Key, alg jws.Algorithm) {
	t.Helper()

	compact, err := token.Encode()
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := jwt.Decode(compact, key)
	if err != nil {
		t.Fatal(err)
	}

	if decoded.Alg() != alg {
		t.Errorf("expected %s but got %s", alg, decoded.Alg())
	}

	wantGrants, err := token.GrantsJSON("")
	if err != nil {
		t.Fatal(err)
	}
	gotGrants, err := decoded.GrantsJSON("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(wantGrants, gotGrants); diff != nil {
		t.Error(diff)
	}

	validator := jwt.NewValidator(alg)
	validator.SetNow(2000)
	if err := validator.AddGrant("sub", "john.doe"); err != nil {
		t.Fatal(err)
	}

	valid, err := validator.Validate(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if !valid {
		t.Error(validator.Status())
	}

	// any flipped payload bit must be caught
	parts := strings.Split(compact, ".")
	tampered := []byte(parts[1])
	if tampered[0] != 'A' {
		tampered[0] = 'A'
	} else {
		tampered[0] = 'B'
	}
	_, err = jwt.Decode(parts[0]+"."+string(tampered)+"."+parts[2], key)
	if !errors.Is(err, jwt.ErrBadSignature) && !errors.Is(err, jwt.ErrBadToken) {
		t.Errorf("tampered token accepted: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Run("HMAC", func(t *testing.T) {
		algs := []jws.Algorithm{
			jws.ALG_HS256,
			jws.ALG_HS384,
			jws.ALG_HS512,
		}

		for _, alg := range algs {
			t.Run(alg.String(), func(t *testing.T) {
				token := buildToken(t)
				if err := token.SetAlg(alg, []byte("a-shared-secret")); err != nil {
					t.Fatal(err)
				}

				runRoundTrip(t, token, []byte("a-shared-secret"), alg)
			})
		}
	})

	t.Run("RSA", func(t *testing.T) {
		privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatal(err)
		}

		algs := []jws.Algorithm{
			jws.ALG_RS256,
			jws.ALG_RS384,
			jws.ALG_RS512,
		}

		for _, alg := range algs {
			t.Run(alg.String(), func(t *testing.T) {
				token := buildToken(t)
				if err := token.SetAlg(alg, privateKey); err != nil {
					t.Fatal(err)
				}

				runRoundTrip(t, token, &privateKey.PublicKey, alg)
			})
		}
	})

	t.Run("ECDSA", func(t *testing.T) {
		curves := map[jws.Algorithm]elliptic.Curve{
			jws.ALG_ES256: elliptic.P256(),
			jws.ALG_ES384: elliptic.P384(),
			jws.ALG_ES512: elliptic.P521(),
		}

		for alg, curve := range curves {
			t.Run(alg.String(), func(t *testing.T) {
				privateKey, err := ecdsa.GenerateKey(curve, rand.Reader)
				if err != nil {
					t.Fatal(err)
				}

				token := buildToken(t)
				if err := token.SetAlg(alg, privateKey); err != nil {
					t.Fatal(err)
				}

				runRoundTrip(t, token, &privateKey.PublicKey, alg)
			})
		}
	})

	t.Run("none", func(t *testing.T) {
		token := buildToken(t)

		compact, err := token.Encode()
		if err != nil {
			t.Fatal(err)
		}

		if !strings.HasSuffix(compact, ".") {
			t.Error(compact)
		}

		decoded, err := jwt.Decode(compact, nil)
		if err != nil {
			t.Fatal(err)
		}

		if decoded.Alg() != jws.ALG_NONE {
			t.Error(decoded.Alg())
		}
	})
}

func TestAlgorithmConfusionIsRejected(t *testing.T) {
	// a token accepted under HS256 must not validate against a policy
	// expecting a different algorithm
	token := jwt.New()
	if err := token.AddGrant("sub", "john.doe"); err != nil {
		t.Fatal(err)
	}
	if err := token.SetAlg(jws.ALG_HS256, []byte("a-shared-secret")); err != nil {
		t.Fatal(err)
	}

	compact, err := token.Encode()
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := jwt.Decode(compact, []byte("a-shared-secret"))
	if err != nil {
		t.Fatal(err)
	}

	validator := jwt.NewValidator(jws.ALG_RS256)

	valid, err := validator.Validate(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if valid {
		t.Error("expected invalid")
	}
	if validator.Status() != "Algorithm does not match" {
		t.Error(validator.Status())
	}
}
