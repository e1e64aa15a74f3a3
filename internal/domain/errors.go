package domain

import "errors"

var (
	ErrUnknownGrammar   = errors.New("unknown grammar")
	ErrUnknownFormat    = errors.New("unknown format")
	ErrInvalidRenderer  = errors.New("invalid renderer")
	ErrConversionFailed = errors.New("conversion failed")
	ErrStorageDisabled  = errors.New("artifact storage is not configured")
	ErrUploadFailed     = errors.New("artifact upload to storage failed")
	ErrSpecTooLarge     = errors.New("spec exceeds maximum allowed size")
)
