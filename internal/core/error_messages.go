package core

// error_messages.go maps technical errors to user-facing messages with codes
// for support reference. The CLI prints them on fatal errors and the HTTP
// surface returns them as JSON.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the upload size limit
//	          Patterns: "file too large", "request body too large"
//	FILE002 - No vCard file: No vCard file found in the directory
//	          Patterns: "no vcard file found"
//	FILE003 - Not found: The file could not be found
//	          Patterns: "no such file or directory", "file does not exist"
//	FILE004 - No file: No file was selected
//	          Patterns: "no file provided"
//	FILE005 - Empty file: The uploaded file is empty
//	          Patterns: "empty file"
//	FILE006 - Line too long: A line exceeds the reader limit
//	          Patterns: "token too long"
//
// # Output Errors (OUT001-OUT099)
//
//	OUT001 - Output not writable: The CSV file could not be created
//	         Patterns: "create output file", "check output path"
//	OUT002 - Output incomplete: Writing the CSV failed part way
//	         Patterns: "write csv", "flush csv", "close output file"
//
// # Conversion Errors (CNV001-CNV099)
//
//	CNV001 - System busy: Too many conversions in progress
//	         Patterns: "too many conversions"
//	CNV002 - Request cancelled: Request was cancelled
//	         Patterns: "context canceled"
//	CNV003 - Request timeout: Request timed out
//	         Patterns: "context deadline exceeded"
//	CNV004 - Permission denied: The file could not be read
//	         Patterns: "permission denied"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so output patterns come before the generic OS ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgTooLarge = UserMessage{
		Message: "File exceeds the upload size limit",
		Action:  "Split the vCard export into smaller files",
		Code:    "FILE001",
	}
	msgNotFound = UserMessage{
		Message: "The file could not be found",
		Action:  "Check the path and try again",
		Code:    "FILE003",
	}
	msgOutputNotWritable = UserMessage{
		Message: "The CSV file could not be created",
		Action:  "Check that the directory is writable",
		Code:    "OUT001",
	}
	msgOutputIncomplete = UserMessage{
		Message: "Writing the CSV file failed",
		Action:  "Check free disk space and try again",
		Code:    "OUT002",
	}
)

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
var errorPatterns = []errorPattern{
	// Output errors first: their wrapped causes also contain OS texts.
	{pattern: "create output file", msg: msgOutputNotWritable},
	{pattern: "check output path", msg: msgOutputNotWritable},
	{pattern: "write csv", msg: msgOutputIncomplete},
	{pattern: "flush csv", msg: msgOutputIncomplete},
	{pattern: "close output file", msg: msgOutputIncomplete},

	// File errors
	{pattern: "file too large", msg: msgTooLarge},
	{pattern: "request body too large", msg: msgTooLarge},
	{
		pattern: "no vcard file found",
		msg: UserMessage{
			Message: "No vCard file found",
			Action:  "Place a .vcf file in the directory or pass its path",
			Code:    "FILE002",
		},
	},
	{pattern: "no such file or directory", msg: msgNotFound},
	{pattern: "file does not exist", msg: msgNotFound},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a .vcf file to convert",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a vCard export with at least one contact",
			Code:    "FILE005",
		},
	},
	{
		pattern: "token too long",
		msg: UserMessage{
			Message: "A line in the file is too long to read",
			Action:  "Remove embedded photos from the export and try again",
			Code:    "FILE006",
		},
	},

	// Conversion errors
	{
		pattern: "too many conversions",
		msg: UserMessage{
			Message: "System is busy converting other files",
			Action:  "Please wait a moment and try again",
			Code:    "CNV001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "CNV002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "CNV003",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "The file could not be read",
			Action:  "Check the file permissions",
			Code:    "CNV004",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// Support staff should check the logs for the original error.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first matching pattern, or the ERR000 fallback.
//
//	msg := MapError(fmt.Errorf("open input: %w", fs.ErrNotExist))
//	// msg.Code == "FILE003"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message. Error()
// returns the user text; Unwrap exposes the original for logging and
// errors.Is.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
