// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/crypto"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/internal/validators"
)

// mapStoreError translates a storage error into a service business error,
// keeping the original as context.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, store.ErrAlreadyExists):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return err
}

// mapCryptoError reports every authentication or envelope failure as
// ErrDecryptionFailed so callers cannot tell them apart.
func mapCryptoError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, crypto.ErrAuthenticationFailed),
		errors.Is(err, crypto.ErrMalformedEnvelope),
		errors.Is(err, crypto.ErrUnsupportedVersion),
		errors.Is(err, crypto.ErrInvalidKeyLength):
		return ErrDecryptionFailed
	}

	return err
}

// mapValidationError wraps a validator error into ErrInvalidDataProvided.
func mapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, validators.ErrInvalidRawKey) {
		return fmt.Errorf("%w: %w", ErrInvalidKeyFormat, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}
