package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// NotFoundError indicates an entity does not exist in the local store
type NotFoundError struct {
	*DomainError
	Kind string
	ID   string
}

func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s not found: %s", kind, id)},
		Kind:        kind,
		ID:          id,
	}
}

// LockedUpgradeError indicates an attempt to start a workshop upgrade
// whose previous level has not been completed yet
type LockedUpgradeError struct {
	*DomainError
	LevelID string
}

func NewLockedUpgradeError(levelID string) *LockedUpgradeError {
	return &LockedUpgradeError{
		DomainError: &DomainError{Message: fmt.Sprintf("cannot start locked upgrade %s: complete the previous level first", levelID)},
		LevelID:     levelID,
	}
}

// InvalidStatusError indicates a status string that does not name a known state
type InvalidStatusError struct {
	*DomainError
	Status string
}

func NewInvalidStatusError(status string) *InvalidStatusError {
	return &InvalidStatusError{
		DomainError: &DomainError{Message: fmt.Sprintf("invalid status: %s", status)},
		Status:      status,
	}
}

// ValidationError carries a field-level validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// TransportError wraps a remote-fetch failure (network or decode). The local
// cache remains authoritative when one of these is returned.
type TransportError struct {
	*DomainError
	Cause error
}

func NewTransportError(message string, cause error) *TransportError {
	return &TransportError{
		DomainError: &DomainError{Message: message},
		Cause:       cause,
	}
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
