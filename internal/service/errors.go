package service

import (
	"errors"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrForbidden     = errors.New("forbidden: insufficient permissions")
	ErrInvalidPeriod = errors.New("invalid statistics period: expected TOTAL, WEEKLY or MONTHLY")
)

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

type AuditEntry struct {
	UserID       uuid.UUID
	UserRole     domain.Role
	Action       domain.AuditAction
	ResourceType string
	ResourceID   string
	Changes      string
}
