package services

import "fmt"

// Service errors
var (
	ErrNoTablesSpecified = &ServiceError{Message: "no tables specified"}
	ErrInvalidTeamCount  = &ServiceError{Message: "team count must be between 2 and 128"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// InvalidTableError represents an invalid table name error
type InvalidTableError struct {
	Table string
}

func (e *InvalidTableError) Error() string {
	return fmt.Sprintf("invalid table name: %s", e.Table)
}
