package steps

import (
	"context"
	"fmt"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/modules/course/gateway"
	"github.com/yungbote/aicourse-backend/internal/platform/envutil"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
)

const (
	DefaultMaxWords    = 150
	DefaultQuizSize    = 20
	DefaultFanoutLimit = 5
)

type Config struct {
	MaxWords    int
	QuizSize    int
	FanoutLimit int
}

func ConfigFromEnv() Config {
	return Config{
		MaxWords:    envutil.PositiveInt("PARAGRAPH_MAX_WORDS", DefaultMaxWords),
		QuizSize:    envutil.PositiveInt("QUIZ_SIZE", DefaultQuizSize),
		FanoutLimit: envutil.PositiveInt("FANOUT_CONCURRENCY", DefaultFanoutLimit),
	}
}

func (c Config) withDefaults() Config {
	if c.MaxWords <= 0 {
		c.MaxWords = DefaultMaxWords
	}
	if c.QuizSize <= 0 {
		c.QuizSize = DefaultQuizSize
	}
	if c.FanoutLimit <= 0 {
		c.FanoutLimit = DefaultFanoutLimit
	}
	return c
}

// SkillFinder resolves the catalog skill closest to a text.
type SkillFinder interface {
	NearestSkillForText(ctx context.Context, text string) (*course.Tag, error)
}

// Deps is shared by every step. Skills is optional.
type Deps struct {
	Log    *logger.Logger
	Gen    *gateway.Gateway
	Skills SkillFinder
	Config Config
	// NewID mints paragraph and simplification ids. Fan-out calls it from many goroutines,
	// so it must be safe for concurrent use.
	NewID func() string
}

func (d Deps) check(op string) (Deps, error) {
	if d.Log == nil || d.Gen == nil {
		return d, fmt.Errorf("%s: missing deps", op)
	}
	d.Config = d.Config.withDefaults()
	if d.NewID == nil {
		d.NewID = newUUID
	}
	return d, nil
}
