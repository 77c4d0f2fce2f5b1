package service

import "errors"

// ErrValidation marks input errors detected before any persistence attempt.
// Services wrap it with a descriptive message; handlers map it to 400.
var ErrValidation = errors.New("validation failed")
