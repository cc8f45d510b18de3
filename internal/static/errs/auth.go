package errs

import "errors"

var (
	MissingCredential = errors.New("missing API key")
	InvalidCredential = errors.New("invalid API key")
)

var (
	InternalError      = errors.New("internal error")
	GeneratingToken    = errors.New("error generating token")
	FailedToCreateUser = errors.New("failed to register creator")
)
