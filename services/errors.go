package services

import "errors"

// ErrValidation is returned when form/body validation fails; the api maps it
// to 403, the admin app re-renders the form with the message.
var ErrValidation = errors.New("validation failed")
