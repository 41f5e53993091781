package core

import "errors"

// Sentinel errors returned by the conversion service and the HTTP surface.
// Their texts are matched by MapError, so keep them in sync with
// errorPatterns.
var (
	// ErrNoInput means the input directory holds no vCard file.
	ErrNoInput = errors.New("no vcard file found")

	// ErrNoFile means an upload request carried no file part.
	ErrNoFile = errors.New("no file provided")

	// ErrEmptyUpload means an uploaded file had no content.
	ErrEmptyUpload = errors.New("empty file")

	// ErrUploadTooLarge means an upload exceeded the configured size limit.
	ErrUploadTooLarge = errors.New("file too large")

	// ErrTooManyConversions means no conversion slot became free in time.
	ErrTooManyConversions = errors.New("too many conversions in progress")
)
