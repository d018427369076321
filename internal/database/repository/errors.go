package repository

import "errors"

// ErrDuplicateIdentity is returned when a registration collides with an
// existing email or CPF.
var ErrDuplicateIdentity = errors.New("email or cpf already registered")

// ErrNotFound is returned when a row lookup by id matches nothing.
var ErrNotFound = errors.New("not found")
