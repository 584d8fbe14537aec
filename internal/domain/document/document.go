package document

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeLabReport    Type = "LAB_REPORT"
	TypePrescription Type = "PRESCRIPTION"
	TypeXRay         Type = "XRAY"
	TypeMRIScan      Type = "MRI_SCAN"
	TypeCTScan       Type = "CT_SCAN"
	TypeUltrasound   Type = "ULTRASOUND"
	TypeECG          Type = "ECG"
	TypeOther        Type = "OTHER"
)

// Document is metadata for a file held by the document store. The file
// content itself is never loaded here.
type Document struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime"`

	PatientID   uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	FileName    string    `gorm:"column:file_name;type:varchar(255);not null"`
	ContentType string    `gorm:"column:content_type;type:varchar(100)"`
	Type        Type      `gorm:"column:document_type;type:varchar(30);not null;default:'OTHER'"`
	Description string    `gorm:"column:description;type:text"`
	URL         string    `gorm:"column:url;type:text"`
}

func (Document) TableName() string {
	return "documents.medical_documents"
}

// Lookup lists a patient's documents for the doctor worklist.
type Lookup interface {
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Document, error)
}
