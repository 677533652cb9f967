package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Scheme identifies a password hashing scheme by the prefix of its encoded
// hash string.
type Scheme string

const (
	// SchemeBcrypt produces standard $2a$/$2b$ bcrypt hashes.
	SchemeBcrypt Scheme = "bcrypt"

	// SchemeArgon2id verifies PHC-format Argon2id hashes. Kept for records
	// hashed before the switch to bcrypt; new hashes are never produced
	// with it.
	SchemeArgon2id Scheme = "argon2id"
)

var (
	ErrPasswordMismatch = errors.New("cryptox: password does not match")
	ErrUnknownScheme    = errors.New("cryptox: unrecognised hash scheme")
)

// Context hashes and verifies passwords across a configured set of schemes.
// The first scheme is the current one and is used for all new hashes; the
// remaining schemes are accepted during verification so that old records
// keep working after a scheme migration.
type Context struct {
	current  Scheme
	accepted map[Scheme]struct{}
	cost     int
}

// NewContext builds a Context. At least one scheme is required; the first is
// the current scheme.
func NewContext(schemes ...Scheme) (*Context, error) {
	if len(schemes) == 0 {
		return nil, errors.New("cryptox: at least one scheme required")
	}
	if schemes[0] != SchemeBcrypt {
		return nil, fmt.Errorf("cryptox: unsupported current scheme %q", schemes[0])
	}

	accepted := make(map[Scheme]struct{}, len(schemes))
	for _, s := range schemes {
		switch s {
		case SchemeBcrypt, SchemeArgon2id:
			accepted[s] = struct{}{}
		default:
			return nil, fmt.Errorf("cryptox: unsupported scheme %q", s)
		}
	}

	return &Context{
		current:  schemes[0],
		accepted: accepted,
		cost:     bcrypt.DefaultCost,
	}, nil
}

// DefaultContext accepts bcrypt for new hashes and argon2id as a deprecated
// legacy scheme.
func DefaultContext() *Context {
	ctx, err := NewContext(SchemeBcrypt, SchemeArgon2id)
	if err != nil {
		panic(err) // static scheme list, cannot fail
	}
	return ctx
}

// Hash produces a salted one-way hash of the plaintext using the current
// scheme. The salt is generated internally by bcrypt.
func (c *Context) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether the plaintext produces an equivalent hash under the
// scheme the stored hash was created with. It returns ErrPasswordMismatch on
// a wrong password and ErrUnknownScheme when the hash belongs to a scheme
// that is not in the accepted set.
func (c *Context) Verify(password, encodedHash string) error {
	switch identifyScheme(encodedHash) {
	case SchemeBcrypt:
		if _, ok := c.accepted[SchemeBcrypt]; !ok {
			return ErrUnknownScheme
		}
		if err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)); err != nil {
			return ErrPasswordMismatch
		}
		return nil
	case SchemeArgon2id:
		if _, ok := c.accepted[SchemeArgon2id]; !ok {
			return ErrUnknownScheme
		}
		return verifyArgon2id(password, encodedHash)
	default:
		return ErrUnknownScheme
	}
}

// NeedsRehash reports whether a stored hash was produced by a deprecated
// scheme and should be re-hashed on next successful login.
func (c *Context) NeedsRehash(encodedHash string) bool {
	return identifyScheme(encodedHash) != c.current
}

func identifyScheme(encodedHash string) Scheme {
	switch {
	case strings.HasPrefix(encodedHash, "$2a$"),
		strings.HasPrefix(encodedHash, "$2b$"),
		strings.HasPrefix(encodedHash, "$2y$"):
		return SchemeBcrypt
	case strings.HasPrefix(encodedHash, "$argon2id$"):
		return SchemeArgon2id
	default:
		return ""
	}
}

// verifyArgon2id compares a plaintext password against a PHC-style Argon2id
// hash: $argon2id$v=19$m=X,t=Y,p=Z$salt$hash.
func verifyArgon2id(password, encodedHash string) error {
	parts := strings.Split(encodedHash, "$")

	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	if len(parts) != 6 {
		return errors.New("cryptox: invalid argon2id hash: expected 6 parts")
	}
	if parts[2] != "v=19" {
		return errors.New("cryptox: invalid argon2id hash: wrong version")
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("cryptox: invalid argon2id hash: parse parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("cryptox: invalid argon2id hash: decode salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("cryptox: invalid argon2id hash: decode hash: %w", err)
	}

	computed := argon2.IDKey([]byte(password), salt, iters, mem, par, uint32(len(expected)))

	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}
