package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/aicourse-backend/internal/data/repos/runs"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
)

type Repos struct {
	Runs runs.RunRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Runs: runs.NewRunRepo(db, log),
	}
}
