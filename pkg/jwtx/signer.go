package jwtx

// Signer is our interface for anything that can sign access tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// NewSignerHS256 creates an HS256 signer from a process-wide secret key.
func NewSignerHS256(secret []byte) (Signer, error) {
	return newHS256Signer(secret)
}
