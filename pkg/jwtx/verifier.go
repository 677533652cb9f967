package jwtx

import "errors"

// Verifier validates a token string and gives you back the claims if it's
// legit. Verification is a pure in-process computation: signature check plus
// clock comparison, no store access.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed     = errors.New("jwtx: malformed token")
	ErrAlgMismatch   = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig    = errors.New("jwtx: invalid signature")
	ErrExpired       = errors.New("jwtx: token expired")
	ErrNotYetValid   = errors.New("jwtx: token not yet valid")
	ErrIssuer        = errors.New("jwtx: issuer mismatch")
	ErrMissingClaims = errors.New("jwtx: required claims absent")
)

// NewVerifierHS256 creates a verifier for HS256-signed tokens using the same
// process-wide secret the signer holds.
func NewVerifierHS256(secret []byte, issuer string) (Verifier, error) {
	return newHS256Verifier(secret, issuer)
}
