package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&course.ProcessingRun{},
	)
}
