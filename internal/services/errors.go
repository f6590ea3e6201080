package services

import "errors"

var (
	// ErrUnknownUserMode is returned for a user service mode other than
	// database or http_api
	ErrUnknownUserMode = errors.New("unknown user service mode")

	// ErrUserServiceConfig indicates a mode is missing its collaborator
	ErrUserServiceConfig = errors.New("invalid user service configuration")

	// ErrUserAPIRequest indicates the user API could not be reached
	ErrUserAPIRequest = errors.New("user API request failed")

	// ErrUserAPIInvalidResp indicates the user API answered with an
	// unexpected status or body
	ErrUserAPIInvalidResp = errors.New("user API returned an invalid response")
)
