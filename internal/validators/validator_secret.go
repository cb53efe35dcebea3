package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-vault-keeper/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldName         = "name"
	FieldType         = "type"
	FieldValue        = "value"
	FieldTags         = "tags"
	FieldFolder       = "folder"
	FieldUpdate       = "update"
	FieldSecretID     = "secret_id"
	FieldTargetUserID = "target_user_id"
	FieldPermission   = "permission"
)

const (
	maxNameLength = 255
	maxTagLength  = 64
	maxTags       = 32
)

// SecretValidator checks secret, folder and share input before it reaches
// the vault services.
type SecretValidator struct {
}

func NewSecretValidator() Validator {
	return &SecretValidator{}
}

func (v *SecretValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateSecretRequest:
		return v.validateCreateRequest(ctx, value, fields...)
	case *models.CreateSecretRequest:
		return v.validateCreateRequest(ctx, *value, fields...)

	case models.UpdateSecretRequest:
		return v.validateUpdateRequest(ctx, value, fields...)
	case *models.UpdateSecretRequest:
		return v.validateUpdateRequest(ctx, *value, fields...)

	case models.ShareRequest:
		return v.validateShareRequest(ctx, value, fields...)
	case *models.ShareRequest:
		return v.validateShareRequest(ctx, *value, fields...)

	case models.Folder:
		return v.validateFolder(ctx, value, fields...)
	case *models.Folder:
		return v.validateFolder(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SecretValidator) validateCreateRequest(_ context.Context, req models.CreateSecretRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldType, FieldValue, FieldTags, FieldFolder}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if err := validateName(req.Name); err != nil {
				return err
			}
		case FieldType:
			if !req.Type.IsValid() {
				return fmt.Errorf("%w: %q", ErrInvalidSecretType, req.Type)
			}
		case FieldValue:
			// notes may be empty
			if len(req.Value) == 0 && req.Type != models.Note {
				return ErrEmptyValue
			}
		case FieldTags:
			if err := validateTags(req.Tags); err != nil {
				return err
			}
		case FieldFolder:
			if req.FolderID != nil && *req.FolderID == "" {
				return ErrEmptyFolderID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SecretValidator) validateUpdateRequest(_ context.Context, req models.UpdateSecretRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUpdate, FieldName, FieldType, FieldValue, FieldTags, FieldFolder}
	}

	for _, f := range fields {
		switch f {
		case FieldUpdate:
			if req.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldName:
			if req.Name != nil {
				if err := validateName(*req.Name); err != nil {
					return err
				}
			}
		case FieldType:
			if req.Type != nil && !req.Type.IsValid() {
				return fmt.Errorf("%w: %q", ErrInvalidSecretType, *req.Type)
			}
		case FieldValue:
			// whether an empty value is allowed depends on the stored
			// type, which only the secret service knows
		case FieldTags:
			if req.Tags != nil {
				if err := validateTags(*req.Tags); err != nil {
					return err
				}
			}
		case FieldFolder:
			if req.MoveFolder && req.FolderID != nil && *req.FolderID == "" {
				return ErrEmptyFolderID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SecretValidator) validateShareRequest(_ context.Context, req models.ShareRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSecretID, FieldTargetUserID, FieldPermission}
	}

	for _, f := range fields {
		switch f {
		case FieldSecretID:
			if req.SecretID == "" {
				return ErrEmptySecretID
			}
		case FieldTargetUserID:
			if req.TargetUserID <= 0 {
				return ErrInvalidTargetUser
			}
		case FieldPermission:
			if req.Permission != "" && !req.Permission.IsValid() {
				return fmt.Errorf("%w: %q", ErrInvalidPermission, req.Permission)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SecretValidator) validateFolder(_ context.Context, folder models.Folder, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldFolder}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if err := validateName(folder.Name); err != nil {
				return err
			}
		case FieldFolder:
			if folder.ParentID != nil && *folder.ParentID == "" {
				return ErrEmptyFolderID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func validateTags(tags []string) error {
	if len(tags) > maxTags {
		return ErrTooManyTags
	}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || utf8.RuneCountInString(tag) > maxTagLength {
			return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
		}
	}
	return nil
}
