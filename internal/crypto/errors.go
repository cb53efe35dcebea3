package crypto

import "errors"

var (
	ErrInvalidKeyLength     = errors.New("invalid key length")
	ErrMalformedEnvelope    = errors.New("malformed envelope")
	ErrUnsupportedVersion   = errors.New("unsupported envelope version")
	ErrAuthenticationFailed = errors.New("envelope authentication failed")
	ErrRandomSource         = errors.New("reading random source failed")
	ErrMalformedKeyBundle   = errors.New("malformed key bundle")
)
