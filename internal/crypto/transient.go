package crypto

import "github.com/awnumar/memguard"

// WithTransient moves plaintext into a locked, guarded buffer, wipes the
// source slice and calls fn with the protected bytes. The buffer is destroyed
// when fn returns, so fn must not retain its argument.
func WithTransient(plaintext []byte, fn func([]byte) error) error {
	buf := memguard.NewBufferFromBytes(plaintext)
	defer buf.Destroy()

	return fn(buf.Bytes())
}

// WithKey opens an enclave-sealed key for the duration of fn. The opened
// buffer is destroyed when fn returns.
//
// Returns ErrInvalidKeyLength for a nil enclave, or the memguard error when
// the enclave cannot be decrypted.
func WithKey(enclave *memguard.Enclave, fn func(key []byte) error) error {
	if enclave == nil {
		return ErrInvalidKeyLength
	}
	buf, err := enclave.Open()
	if err != nil {
		return err
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}
