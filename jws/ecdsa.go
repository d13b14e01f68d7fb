package jws

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/asn1"
	"fmt"
	"hash"
	"math/big"
)

// ecdsaSignature is the DER SEQUENCE{r, s} most crypto backends exchange.
// JWS instead requires the two integers concatenated at a fixed width per
// curve; rawFromDER and derFromRaw convert between the two forms.
type ecdsaSignature struct {
	R, S *big.Int
}

// rawFromDER converts a DER encoded signature into the fixed-width r||s
// concatenation required by RFC 7518 section 3.4. Each integer occupies
// exactly keyBytes octets, left-padded with zeros; DER's leading zero
// octets are dropped by the big.Int round trip.
func rawFromDER(der []byte, keyBytes int) ([]byte, error) {
	var sig ecdsaSignature
	rest, err := asn1.Unmarshal(der, &sig)
	if err != nil || len(rest) > 0 {
		return nil, fmt.Errorf("%w: malformed DER signature", ErrCrypto)
	}

	rBytes := sig.R.Bytes()
	sBytes := sig.S.Bytes()
	if len(rBytes) > keyBytes || len(sBytes) > keyBytes {
		return nil, fmt.Errorf("%w: signature integer exceeds curve width", ErrCrypto)
	}

	out := make([]byte, 2*keyBytes)
	copy(out[keyBytes-len(rBytes):], rBytes)
	copy(out[2*keyBytes-len(sBytes):], sBytes)

	return out, nil
}

// derFromRaw converts a fixed-width r||s concatenation into the DER
// SEQUENCE{r, s} form. The input must be of even length.
func derFromRaw(raw []byte) ([]byte, error) {
	n := len(raw) / 2

	der, err := asn1.Marshal(ecdsaSignature{
		R: new(big.Int).SetBytes(raw[:n]),
		S: new(big.Int).SetBytes(raw[n:]),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCrypto, err)
	}

	return der, nil
}

// keyBytesForBitSize returns the octet width of a single signature integer
// for a curve of the given bit size: 32 for P-256, 48 for P-384 and 66 for
// P-521.
func keyBytesForBitSize(bitSize int) int {
	keyBytes := bitSize / 8
	if bitSize%8 > 0 {
		keyBytes++
	}
	return keyBytes
}

// --

// ecdsaSigner implements a signature signer using an ECDSA algorithm with
// SHA-2 based hashing as defined in RFC 7518 section 3.4
// (https://www.rfc-editor.org/rfc/rfc7518.html#section-3.4)
type ecdsaSigner struct {
	alg        Algorithm
	privateKey *ecdsa.PrivateKey
	hf         func() hash.Hash
	keyBitSize int
}

func (e *ecdsaSigner) Alg() Algorithm {
	return e.alg
}

func (e *ecdsaSigner) Sign(data []byte) ([]byte, error) {
	h := e.hf()
	h.Write(data)
	hashed := h.Sum(nil)

	der, err := ecdsa.SignASN1(rand.Reader, e.privateKey, hashed)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCrypto, err)
	}

	return rawFromDER(der, keyBytesForBitSize(e.keyBitSize))
}

// ESSigner creates a new Signer for ECDSA based signatures using alg as the
// algorithm and privateKey as the signing key. If alg does not denote a
// supported ECDSA algorithm (i.e. HS256 or RS256) a non-nil error is returned.
func ESSigner(alg Algorithm, privateKey *ecdsa.PrivateKey) (Signer, error) {
	switch alg {
	case ALG_ES256:
		return ES256Signer(privateKey)
	case ALG_ES384:
		return ES384Signer(privateKey)
	case ALG_ES512:
		return ES512Signer(privateKey)
	default:
		return nil, fmt.Errorf("%w: unsupported ECDSA signature algorithm: %s", ErrInvalidAlgorithm, alg)
	}
}

// ES256Signer creates a Signer providing ECDSA using P-256 and SHA-256
// signatures using the given private key which must use
// elliptic.P256() as the underlying curve.
func ES256Signer(privateKey *ecdsa.PrivateKey) (Signer, error) {
	if privateKey.Curve.Params().BitSize != 256 {
		return nil, fmt.Errorf("%w: must use elliptic curve key with curve bit size of 256", ErrKeyMismatch)
	}

	return &ecdsaSigner{
		alg:        ALG_ES256,
		privateKey: privateKey,
		hf:         sha256.New,
		keyBitSize: 256,
	}, nil
}

// ES384Signer creates a Signer providing ECDSA using P-384 and SHA-384
// signatures using the given private key which must use
// elliptic.P384() as the underlying curve.
func ES384Signer(privateKey *ecdsa.PrivateKey) (Signer, error) {
	if privateKey.Curve.Params().BitSize != 384 {
		return nil, fmt.Errorf("%w: must use elliptic curve key with curve bit size of 384", ErrKeyMismatch)
	}

	return &ecdsaSigner{
		alg:        ALG_ES384,
		privateKey: privateKey,
		hf:         sha512.New384,
		keyBitSize: 384,
	}, nil
}

// ES512Signer creates a Signer providing ECDSA using P-521 and SHA-512
// signatures using the given private key which must use
// elliptic.P521() as the underlying curve.
func ES512Signer(privateKey *ecdsa.PrivateKey) (Signer, error) {
	if privateKey.Curve.Params().BitSize != 521 {
		return nil, fmt.Errorf("%w: must use elliptic curve key with curve bit size of 521", ErrKeyMismatch)
	}

	return &ecdsaSigner{
		alg:        ALG_ES512,
		privateKey: privateKey,
		hf:         sha512.New,
		keyBitSize: 521,
	}, nil
}

// --

type ecdsaVerifier struct {
	alg        Algorithm
	publicKey  *ecdsa.PublicKey
	hf         func() hash.Hash
	keyBitSize int
}

func (e *ecdsaVerifier) Verify(alg Algorithm, data, signature []byte) error {
	if alg != e.alg {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, "invalid algorithm")
	}

	keyBytes := keyBytesForBitSize(e.keyBitSize)
	if len(signature) != 2*keyBytes {
		return fmt.Errorf("%w: signature must be %d bytes for %s", ErrInvalidSignature, 2*keyBytes, e.alg)
	}

	der, err := derFromRaw(signature)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	h := e.hf()
	h.Write(data)
	hashed := h.Sum(nil)

	if !ecdsa.VerifyASN1(e.publicKey, hashed, der) {
		return ErrInvalidSignature
	}

	return nil
}

// ESVerifier creates a new Verifier for ECDSA based signatures using alg as
// the algorithm and publicKey as the public key. If alg does not denote a
// supported ECDSA algorithm (i.e. HS256 or RS256) a non-nil error is returned.
func ESVerifier(alg Algorithm, publicKey *ecdsa.PublicKey) (Verifier, error) {
	switch alg {
	case ALG_ES256:
		return ES256Verifier(publicKey)
	case ALG_ES384:
		return ES384Verifier(publicKey)
	case ALG_ES512:
		return ES512Verifier(publicKey)
	default:
		return nil, fmt.Errorf("%w: unsupported ECDSA signature algorithm: %s", ErrInvalidAlgorithm, alg)
	}
}

// ES256Verifier creates a Verifier verifying ECDSA using P-256 and SHA-256
// signatures using the given public key which must use
// elliptic.P256() as the underlying curve.
func ES256Verifier(publicKey *ecdsa.PublicKey) (Verifier, error) {
	if publicKey.Params().BitSize != 256 {
		return nil, fmt.Errorf("%w: must use elliptic curve key with curve bit size of 256", ErrKeyMismatch)
	}

	return &ecdsaVerifier{
		alg:        ALG_ES256,
		publicKey:  publicKey,
		hf:         sha256.New,
		keyBitSize: 256,
	}, nil
}

// ES384Verifier creates a Verifier verifying ECDSA using P-384 and SHA-384
// signatures using the given public key which must use
// elliptic.P384() as the underlying curve.
func ES384Verifier(publicKey *ecdsa.PublicKey) (Verifier, error) {
	if publicKey.Params().BitSize != 384 {
		return nil, fmt.Errorf("%w: must use elliptic curve key with curve bit size of 384", ErrKeyMismatch)
	}

	return &ecdsaVerifier{
		alg:        ALG_ES384,
		publicKey:  publicKey,
		hf:         sha512.New384,
		keyBitSize: 384,
	}, nil
}

// ES512Verifier creates a Verifier verifying ECDSA using P-521 and SHA-512
// signatures using the given public key which must use
// elliptic.P521() as the underlying curve.
func ES512Verifier(publicKey *ecdsa.PublicKey) (Verifier, error) {
	if publicKey.Params().BitSize != 521 {
		return nil, fmt.Errorf("%w: must use elliptic curve key with curve bit size of 521", ErrKeyMismatch)
	}

	return &ecdsaVerifier{
		alg:        ALG_ES512,
		publicKey:  publicKey,
		hf:         sha512.New,
		keyBitSize: 521,
	}, nil
}
