package database

import (
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/config"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/availability"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/directory"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/document"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: false,
		DisableAutomaticPing:                     false,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: false,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// Schemas are logical namespaces; the directory and documents schemas are
// owned by collaborating services and only created here so a fresh database
// can be migrated in one step.
var Schemas = []string{"directory", "scheduling", "documents", "audit"}

func Models() []any {
	return []any{
		&directory.Hospital{},
		&directory.Department{},
		&directory.Doctor{},
		&directory.Patient{},
		&document.Document{},
		&availability.Window{},
		&appointment.Appointment{},
		&domain.AuditLog{},
	}
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	for _, schema := range Schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	createIndexes(db, log)

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

type indexDef struct {
	name  string
	query string
}

var indexes = []indexDef{
	{
		name:  "chk_availability_window_range",
		query: `ALTER TABLE scheduling.availability_windows ADD CONSTRAINT chk_availability_window_range CHECK (start_time < end_time)`,
	},
	{
		name:  "idx_documents_patient_uploaded",
		query: `CREATE INDEX IF NOT EXISTS idx_documents_patient_uploaded ON documents.medical_documents (patient_id, uploaded_at DESC)`,
	},
}

// createIndexes adds objects AutoMigrate cannot express. Failures are logged
// and do not abort the migration; the constraint already existing is the
// common case on re-runs.
func createIndexes(db *gorm.DB, log *zap.Logger) {
	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			log.Debug("skipping index", zap.String("index", idx.name), zap.Error(err))
		}
	}
}
