package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidRawKey     = errors.New("key must be 16 characters with at least one letter and one digit")
	ErrEmptyName         = errors.New("name is required")
	ErrNameTooLong       = errors.New("name is too long")
	ErrInvalidSecretType = errors.New("invalid secret type")
	ErrEmptyValue        = errors.New("value is required")
	ErrInvalidTag        = errors.New("invalid tag")
	ErrTooManyTags       = errors.New("too many tags")
	ErrNoFieldsToUpdate  = errors.New("at least one field must be provided for update")
	ErrEmptySecretID     = errors.New("secret id is required")
	ErrInvalidTargetUser = errors.New("invalid target user")
	ErrInvalidPermission = errors.New("invalid permission")
	ErrEmptyFolderID     = errors.New("folder id is required when moving to a folder")
)
