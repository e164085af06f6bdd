package trace

import "errors"

// Configuration errors surfaced before any rendering work starts.
var (
	ErrUnknownShader = errors.New("trace: unknown shader")
	ErrInvalidCamera = errors.New("trace: invalid camera index")
)
