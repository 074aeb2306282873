package commands

import (
	"path/filepath"
	"testing"

	"MemoKeeper/internal/config"
)

// withTempConfig возвращает конфиг, у которого база и ключ лежат во временном каталоге.
func withTempConfig(t *testing.T, owner string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ClientDBPath: dir,
		DatabaseDSN:  filepath.Join(dir, "memokeeper.db"),
		Owner:        owner,
		KeyFile:      filepath.Join(dir, owner, "key.bin"),
	}
}
