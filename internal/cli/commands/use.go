package commands

import (
	"context"
	"errors"
	"fmt"

	"MemoKeeper/internal/cli/repo"
	"MemoKeeper/internal/cli/repo/fs"
	"MemoKeeper/internal/config"
)

// OwnerStoreFor возвращает хранилище последнего владельца для каталога клиента.
// В тестах может переназначаться.
var OwnerStoreFor = func(cfg *config.Config) repo.OwnerContextStore {
	return fs.OwnerFSStore{Dir: cfg.ClientDBPath}
}

type useCmd struct{}

func (useCmd) Name() string { return "use" }
func (useCmd) Description() string {
	return "Выбрать владельца по умолчанию (без аргумента — показать текущего)"
}
func (useCmd) Usage() string { return "use [owner]" }

func (useCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	switch len(args) {
	case 0:
		fmt.Fprintln(Out, cfg.Owner)
		return nil
	case 1:
	default:
		return ErrUsage
	}
	if !config.ValidOwner(args[0]) {
		return fmt.Errorf("invalid owner %q (allowed: letters, digits, . _ -)", args[0])
	}
	if err := OwnerStoreFor(cfg).SaveOwner(args[0]); err != nil {
		return fmt.Errorf("save owner: %w", err)
	}
	logger.Debugw("default owner saved", "owner", args[0])
	fmt.Fprintf(Out, "✓ Владелец по умолчанию: %s\n", args[0])
	return nil
}

// ApplySavedOwner подставляет запомненного в store владельца, если он не задан явно.
func ApplySavedOwner(cfg *config.Config, store repo.OwnerContextStore) {
	if cfg.OwnerSet || store == nil {
		return
	}
	owner, err := store.LoadOwner()
	if err != nil {
		if !errors.Is(err, fs.ErrNoOwner) {
			logger.Warnw("could not read saved owner", "error", err)
		}
		return
	}
	if err := cfg.SetOwner(owner); err != nil {
		logger.Warnw("ignoring saved owner", "owner", owner, "error", err)
	}
}

func init() { RegisterCmd(useCmd{}) }
