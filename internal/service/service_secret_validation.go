package service

import (
	"context"

	"github.com/MKhiriev/go-vault-keeper/internal/validators"
	"github.com/MKhiriev/go-vault-keeper/models"
)

// SecretValidationService rejects malformed requests before they reach the
// wrapped SecretService, so no invalid input is ever encrypted or logged.
type SecretValidationService struct {
	inner     SecretService
	validator validators.Validator
}

func NewSecretValidationService() SecretServiceWrapper {
	return &SecretValidationService{
		validator: validators.NewSecretValidator(),
	}
}

func (v *SecretValidationService) Create(ctx context.Context, session *Session, req models.CreateSecretRequest) (models.SecretInfo, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.SecretInfo{}, mapValidationError(err)
	}
	return v.inner.Create(ctx, session, req)
}

func (v *SecretValidationService) Read(ctx context.Context, session *Session, secretID string) (models.DecryptedSecret, error) {
	if secretID == "" {
		return models.DecryptedSecret{}, ErrInvalidDataProvided
	}
	return v.inner.Read(ctx, session, secretID)
}

func (v *SecretValidationService) Update(ctx context.Context, session *Session, secretID string, req models.UpdateSecretRequest) (models.SecretInfo, error) {
	if secretID == "" {
		return models.SecretInfo{}, ErrInvalidDataProvided
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.SecretInfo{}, mapValidationError(err)
	}
	return v.inner.Update(ctx, session, secretID, req)
}

func (v *SecretValidationService) Delete(ctx context.Context, session *Session, secretID string) error {
	if secretID == "" {
		return ErrInvalidDataProvided
	}
	return v.inner.Delete(ctx, session, secretID)
}

func (v *SecretValidationService) List(ctx context.Context, session *Session, filter models.SecretFilter) ([]models.SecretInfo, error) {
	if filter.Type != nil && !filter.Type.IsValid() {
		return nil, ErrInvalidDataProvided
	}
	return v.inner.List(ctx, session, filter)
}

func (v *SecretValidationService) SharedWithMe(ctx context.Context, session *Session) ([]models.SecretInfo, error) {
	return v.inner.SharedWithMe(ctx, session)
}

func (v *SecretValidationService) Wrap(inner SecretService) SecretService {
	v.inner = inner
	return v
}
