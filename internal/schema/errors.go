package schema

import (
	"errors"
	"fmt"
)

// ErrDuplicateTable is matched by every DuplicateTableError.
var ErrDuplicateTable = errors.New("duplicate table")

// UnrecognizedFieldError reports a field whose token is neither a primitive
// type nor a known entity. It is a soft error: the field is dropped and the
// entity is still processed.
type UnrecognizedFieldError struct {
	Table string
	Field string
	Token string
}

func (e *UnrecognizedFieldError) Error() string {
	return fmt.Sprintf("%s.%s: unrecognized type %q", e.Table, e.Field, e.Token)
}

// DuplicateFieldError reports a field whose column name is already taken in
// the same table. The later field is dropped.
type DuplicateFieldError struct {
	Table string
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("%s.%s: duplicate column", e.Table, e.Field)
}

// DuplicateTableError reports a table name that is already registered.
type DuplicateTableError struct {
	Table string
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("table %s already registered", e.Table)
}

func (e *DuplicateTableError) Is(target error) bool {
	return target == ErrDuplicateTable
}

// MissingCollaboratorError is fatal: a required input (the primitive
// vocabulary or the thing catalog) is absent or unreadable.
type MissingCollaboratorError struct {
	Name string
	Err  error
}

func (e *MissingCollaboratorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("missing %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("missing %s", e.Name)
}

func (e *MissingCollaboratorError) Unwrap() error {
	return e.Err
}

// DanglingReferenceError reports a foreign key target that has no table in
// the registry.
type DanglingReferenceError struct {
	Table  string
	Target string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("table %s references %s, which is not registered", e.Table, e.Target)
}
