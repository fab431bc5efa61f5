package services

import "errors"

// Errors shared across services and the HTTP mapping layer. Rule
// violations from the engine pass through untouched; these cover the
// concerns the services add on top.
var (
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrTournamentCompleted = errors.New("tournament is already completed")

	ErrInvalidCredentials = errors.New("invalid password")

	ErrUploadsDisabled  = errors.New("file uploads are not configured")
	ErrInvalidFileType  = errors.New("unsupported file type")
	ErrFileUploadFailed = errors.New("failed to upload file")
)
