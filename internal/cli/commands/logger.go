package commands

import (
	"MemoKeeper/internal/cli/bootstrap"
	"MemoKeeper/internal/config"

	"go.uber.org/zap"
)

var logger = zap.NewNop().Sugar()

// SetLogger задаёт логгер для команд и сервисов, которые они открывают.
func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		logger = l
	}
}

// withSession открывает сессию владельца из cfg, вызывает fn и закрывает сессию.
func withSession(cfg *config.Config, fn func(s *bootstrap.Session) error) error {
	s, done, err := bootstrap.OpenSession(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := done(); err != nil {
			logger.Warnw("session cleanup failed", "error", err)
		}
	}()
	return fn(s)
}
