package database

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/gorm"
)

// EnableTracing records a span per query under the request span carried by the
// statement context. Query variables are left out of the spans.
func EnableTracing(db *gorm.DB, driver string) error {
	system := "postgresql"
	if driver == DriverSQLite {
		system = "sqlite"
	}
	return db.Use(otelgorm.NewPlugin(
		otelgorm.WithDBName(system),
		otelgorm.WithoutQueryVariables(),
	))
}
