package jws

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestParseAlgorithm(t *testing.T) {
	tests := map[string]Algorithm{
		"none":  ALG_NONE,
		"NONE":  ALG_NONE,
		"HS256": ALG_HS256,
		"hs256": ALG_HS256,
		"HS384": ALG_HS384,
		"HS512": ALG_HS512,
		"RS256": ALG_RS256,
		"rs384": ALG_RS384,
		"RS512": ALG_RS512,
		"ES256": ALG_ES256,
		"ES384": ALG_ES384,
		"es512": ALG_ES512,
		"":      ALG_INVALID,
		"HS128": ALG_INVALID,
		"foo":   ALG_INVALID,
	}

	for name, want := range tests {
		if got := ParseAlgorithm(name); got != want {
			t.Errorf("%q: expected %d but got %d", name, want, got)
		}
	}
}

func TestAlgorithm_String(t *testing.T) {
	tests := map[Algorithm]string{
		ALG_NONE:      "none",
		ALG_HS256:     "HS256",
		ALG_HS384:     "HS384",
		ALG_HS512:     "HS512",
		ALG_RS256:     "RS256",
		ALG_RS384:     "RS384",
		ALG_RS512:     "RS512",
		ALG_ES256:     "ES256",
		ALG_ES384:     "ES384",
		ALG_ES512:     "ES512",
		ALG_INVALID:   "",
		Algorithm(99): "",
	}

	for alg, want := range tests {
		if got := alg.String(); got != want {
			t.Errorf("%d: expected %q but got %q", alg, want, got)
		}
	}
}

func TestAlgorithm_roundTrip(t *testing.T) {
	for alg := ALG_NONE; alg < ALG_INVALID; alg++ {
		if got := ParseAlgorithm(alg.String()); got != alg {
			t.Errorf("%s: round trip produced %d", alg, got)
		}
	}
}

func TestNone(t *testing.T) {
	sm := None()

	if sm.Alg() != ALG_NONE {
		t.Error(sm.Alg())
	}

	data := []byte("hello, world")

	sig, err := sm.Sign(data)
	if err != nil {
		t.Fatal(err)
	}

	s := enc.EncodeToString(sig)
	if s != "" {
		t.Error(s)
	}

	if err := sm.Verify(ALG_NONE, data, sig); err != nil {
		t.Error(err)
	}

	if err := sm.Verify(ALG_NONE, data, []byte{1}); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature but got %v", err)
	}
}

func TestSign_none(t *testing.T) {
	sig, err := Sign(ALG_NONE, nil, []byte("hello, world"))
	if err != nil {
		t.Fatal(err)
	}

	if len(sig) != 0 {
		t.Errorf("expected empty signature but got %v", sig)
	}

	if err := Verify(ALG_NONE, nil, []byte("hello, world"), sig); err != nil {
		t.Error(err)
	}
}

func TestSign_invalidAlgorithm(t *testing.T) {
	if _, err := Sign(ALG_INVALID, nil, []byte("data")); !errors.Is(err, ErrInvalidAlgorithm) {
		t.Errorf("expected ErrInvalidAlgorithm but got %v", err)
	}

	if _, err := Sign(Algorithm(-1), nil, []byte("data")); !errors.Is(err, ErrInvalidAlgorithm) {
		t.Errorf("expected ErrInvalidAlgorithm but got %v", err)
	}
}

func TestCheckKey(t *testing.T) {
	if err := CheckKey(ALG_NONE, nil); err != nil {
		t.Error(err)
	}

	if err := CheckKey(ALG_NONE, []byte("secret")); !errors.Is(err, ErrKeyMismatch) {
		t.Errorf("expected ErrKeyMismatch but got %v", err)
	}

	if err := CheckKey(ALG_HS256, []byte("secret")); err != nil {
		t.Error(err)
	}

	if err := CheckKey(ALG_HS256, []byte{}); !errors.Is(err, ErrKeyMismatch) {
		t.Errorf("expected ErrKeyMismatch but got %v", err)
	}

	if err := CheckKey(ALG_RS256, []byte("secret")); !errors.Is(err, ErrKeyMismatch) {
		t.Errorf("expected ErrKeyMismatch but got %v", err)
	}

	if err := CheckKey(ALG_ES256, "not a key"); !errors.Is(err, ErrKeyMismatch) {
		t.Errorf("expected ErrKeyMismatch but got %v", err)
	}
}

var enc = base64.URLEncoding.WithPadding(base64.NoPadding)
