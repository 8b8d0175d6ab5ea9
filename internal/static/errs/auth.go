package errs

import "errors"

var InvalidCredentials = errors.New("invalid credentials")

var (
	InternalError   = errors.New("internal error")
	GeneratingToken = errors.New("error generating token")
	MissingToken    = errors.New("authorization header missing")
	InvalidToken    = errors.New("invalid token")
	Forbidden       = errors.New("not allowed")
)
