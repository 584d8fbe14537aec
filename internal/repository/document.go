package repository

import (
	"context"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/document"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type documentRepo struct {
	db *gorm.DB
}

// NewDocumentLookup reads document metadata owned by the document store.
func NewDocumentLookup(db *gorm.DB) document.Lookup {
	return &documentRepo{db: db}
}

func (r *documentRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*document.Document, error) {
	var out []*document.Document
	err := conn(ctx, r.db).
		Where("patient_id = ?", patientID).
		Order("uploaded_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing patient documents: %w", err)
	}
	return out, nil
}
