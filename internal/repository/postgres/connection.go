package postgres

import (
	"github.com/dom/matchcore/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens a gorm connection to databaseURL and auto-migrates
// the core's persisted tables.
func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&domain.Participant{},
		&domain.Problem{},
		&runRecord{},
		&bucketRecord{},
		&teamRecord{},
		&assignmentRecord{},
		&statusRecord{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
