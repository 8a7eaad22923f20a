package database

import (
	"time"

	"craveconnect/internal/observability"

	"gorm.io/gorm"
)

const queryStartKey = "craveconnect:query_start"

// registerMetricsCallbacks times every statement into DatabaseQueryLatency.
func registerMetricsCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	ops := map[string][2]func(string, func(*gorm.DB)) error{
		"create": {cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		"query":  {cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		"update": {cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		"delete": {cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		"row":    {cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		"raw":    {cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for op, pair := range ops {
		op := op
		if err := pair[0]("metrics:before_"+op, startTimer); err != nil {
			return err
		}
		if err := pair[1]("metrics:after_"+op, func(tx *gorm.DB) { observeQuery(tx, op) }); err != nil {
			return err
		}
	}
	return nil
}

func startTimer(tx *gorm.DB) {
	tx.InstanceSet(queryStartKey, time.Now())
}

func observeQuery(tx *gorm.DB, op string) {
	v, ok := tx.InstanceGet(queryStartKey)
	if !ok {
		return
	}
	start, ok := v.(time.Time)
	if !ok {
		return
	}
	table := tx.Statement.Table
	if table == "" {
		table = "unknown"
	}
	observability.DatabaseQueryLatency.WithLabelValues(op, table).Observe(time.Since(start).Seconds())
}
