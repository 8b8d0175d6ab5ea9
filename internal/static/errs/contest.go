package errs

import "errors"

var (
	TeamNotFound          = errors.New("Team not registered")
	TeamAlreadyRegistered = errors.New("Team already registered")
	TeamNameRequired      = errors.New("Team_Name is required")
	ContestNotFound       = errors.New("Contest not found")
	ProblemNotFound       = errors.New("Problem not found")
	InvalidRound          = errors.New("invalid round")
	InvalidStatus         = errors.New("status must be PASSED or failed")
	InvalidSubmission     = errors.New("structured_submission must be a JSON array of logic nodes")
	UploadFailed          = errors.New("Failed to upload file")
	RoundNotSubmitted     = errors.New("Round not submitted by team")
)
