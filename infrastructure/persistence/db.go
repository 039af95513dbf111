package persistence

import (
	"github.com/Kimutai-cloud/HRMS-sub002/internal/database"
)

// AutoMigrate runs GORM auto migration for all models.
func AutoMigrate(db database.Database) error {
	return db.GORM().AutoMigrate(
		&TaskModel{},
		&CommentModel{},
		&ActivityModel{},
		&EmployeeModel{},
		&PresetDocumentModel{},
	)
}
