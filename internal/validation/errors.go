package validation

import "errors"

var (
	// ErrInfrastructure marks a failure of a collaborator (token store,
	// client store, user service). It is never reported as a token error.
	ErrInfrastructure = errors.New("validation: infrastructure failure")

	// ErrNoClientStore is returned by NewValidator without WithClientStore.
	ErrNoClientStore = errors.New("validation: client store is required")
)
