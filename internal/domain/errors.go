package domain

import "fmt"

// DeserializationError reports a stored record that could not be decoded,
// naming the missing or malformed field.
type DeserializationError struct {
	Kind  string // "weight" or "meal"
	Field string
	Err   error
}

func (e *DeserializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deserialize %s record: field %q: %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("deserialize %s record: field %q missing or invalid", e.Kind, e.Field)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

// StorageError reports a failed read or write against the persistence medium.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// AuthError reports an identity-provider failure. It is opaque to the diary
// core, which never gates on sign-in state.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// ValidationError reports a caller-supplied value outside the accepted domain.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
