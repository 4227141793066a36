package ports

import "time"

// TokenCodec encodes and decodes signed identity claims. Tokens are stateless:
// validity is purely a function of signature and expiry at verification time,
// so rotating the signing secret invalidates everything previously issued.
type TokenCodec interface {
	// Issue produces a signed token asserting subject until now+ttl.
	Issue(subject string, ttl time.Duration) (string, error)
	// Verify returns the embedded subject, or domain.ErrTokenMalformed /
	// domain.ErrTokenExpired.
	Verify(token string) (string, error)
}
