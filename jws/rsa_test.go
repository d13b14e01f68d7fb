package jws

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
)

func TestRS(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	algs := []Algorithm{ALG_RS256, ALG_RS384, ALG_RS512}

	for _, alg := range algs {
		t.Run(alg.String(), func(t *testing.T) {
			data := []byte("hello, world")

			sig, err := Sign(alg, privateKey, data)
			if err != nil {
				t.Fatal(err)
			}

			if err := Verify(alg, &privateKey.PublicKey, data, sig); err != nil {
				t.Error(err)
			}

			// private key works for verification as well
			if err := Verify(alg, privateKey, data, sig); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestRS_verifyRejects(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	data := []byte("hello, world")

	sig, err := Sign(ALG_RS256, privateKey, data)
	if err != nil {
		t.Fatal(err)
	}

	if err := Verify(ALG_RS256, &otherKey.PublicKey, data, sig); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature but got %v", err)
	}

	tampered := append([]byte{}, sig...)
	tampered[len(tampered)-1] ^= 0x80
	if err := Verify(ALG_RS256, &privateKey.PublicKey, data, tampered); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature but got %v", err)
	}
}

func TestRS_keyMismatch(t *testing.T) {
	if _, err := Sign(ALG_RS256, []byte("secret"), []byte("data")); !errors.Is(err, ErrKeyMismatch) {
		t.Errorf("expected ErrKeyMismatch but got %v", err)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	// public keys cannot sign
	if _, err := Sign(ALG_RS256, &privateKey.PublicKey, []byte("data")); !errors.Is(err, ErrKeyMismatch) {
		t.Errorf("expected ErrKeyMismatch but got %v", err)
	}
}

func TestRSVerifier_unsupportedAlgorithm(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := RSVerifier(ALG_HS256, &privateKey.PublicKey); !errors.Is(err, ErrInvalidAlgorithm) {
		t.Errorf("expected ErrInvalidAlgorithm but got %v", err)
	}
}
