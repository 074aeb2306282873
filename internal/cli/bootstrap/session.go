package bootstrap

import (
	"fmt"
	"os"

	"MemoKeeper/internal/config"
	"MemoKeeper/internal/crypto"
	"MemoKeeper/internal/repo"
	"MemoKeeper/internal/service"

	"go.uber.org/zap"
)

// Session — всё, что нужно команде для работы с блобом текущего владельца.
type Session struct {
	Owner   string
	Service *service.BlobService
	Keys    crypto.BlobKeys
}

// OpenSession открывает хранилище блобов, загружает мастер-ключ владельца
// и выводит из него ключи блоба. Возвращает (session, cleanup, error).
// cleanup закрывает БД и затирает ключи; вызывать обязательно.
func OpenSession(cfg *config.Config, logger *zap.SugaredLogger) (*Session, func() error, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("nil config")
	}
	if cfg.ClientDBPath != "" {
		if err := os.MkdirAll(cfg.ClientDBPath, 0o700); err != nil {
			return nil, nil, fmt.Errorf("create client dir: %w", err)
		}
	}

	master, err := crypto.LoadOrCreateKey(cfg.KeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load master key: %w", err)
	}
	keys, err := crypto.DeriveBlobKeys(master)
	clear(master)
	if err != nil {
		return nil, nil, fmt.Errorf("derive blob keys: %w", err)
	}

	db, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		keys.Zero()
		return nil, nil, err
	}

	s := &Session{
		Owner:   cfg.Owner,
		Service: service.NewBlobService(repo.NewBlobRepository(db), logger),
		Keys:    keys,
	}
	cleanup := func() error {
		s.Keys.Zero()
		return repo.CloseDB(db)
	}
	return s, cleanup, nil
}
