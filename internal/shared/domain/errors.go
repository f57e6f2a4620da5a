package domain

import "errors"

// ErrNotFound entité absente du magasin
var ErrNotFound = errors.New("not found")

// ErrValidation entrée refusée par la validation
var ErrValidation = errors.New("validation failed")
