package database

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/medschedule/pkg/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const startedAtKey = "medschedule:started_at"

// RegisterMetrics times every gorm operation into the query duration
// histogram and warns about queries slower than slowThreshold.
func RegisterMetrics(db *gorm.DB, m *metrics.Collector, slowThreshold time.Duration, log *zap.Logger) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(startedAtKey, time.Now())
	}

	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			v, ok := tx.InstanceGet(startedAtKey)
			if !ok {
				return
			}
			elapsed := time.Since(v.(time.Time))

			m.DBQueryDuration.WithLabelValues(operation, tx.Statement.Table).Observe(elapsed.Seconds())
			if slowThreshold > 0 && elapsed > slowThreshold {
				m.DBSlowQueries.Inc()
				log.Warn("slow query",
					zap.String("operation", operation),
					zap.String("table", tx.Statement.Table),
					zap.Duration("elapsed", elapsed),
					zap.Int64("rows", tx.Statement.RowsAffected),
				)
			}
		}
	}

	cb := db.Callback()
	hooks := []struct {
		name   string
		before func(string, func(*gorm.DB)) error
		after  func(string, func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
	}

	for _, h := range hooks {
		if err := h.before("metrics:before_"+h.name, before); err != nil {
			return err
		}
		if err := h.after("metrics:after_"+h.name, after(h.name)); err != nil {
			return err
		}
	}
	return nil
}
