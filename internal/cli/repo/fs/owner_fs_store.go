package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoOwner — владелец ещё не выбирался.
var ErrNoOwner = errors.New("no stored owner")

// OwnerFSStore — файловое хранилище последнего владельца в каталоге клиента.
type OwnerFSStore struct {
	Dir string
}

func (s OwnerFSStore) path() (string, error) {
	if s.Dir == "" {
		return "", errors.New("empty client dir")
	}
	return filepath.Join(s.Dir, "last_owner"), nil
}

// SaveOwner сохраняет владельца в файл.
func (s OwnerFSStore) SaveOwner(owner string) error {
	if owner == "" {
		return errors.New("empty owner")
	}
	p, err := s.path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(p, []byte(owner), 0o600)
}

// LoadOwner читает владельца из файла. Нет файла или он пуст — ErrNoOwner.
func (s OwnerFSStore) LoadOwner() (string, error) {
	p, err := s.path()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoOwner
	}
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	owner := strings.TrimRight(string(b), " \t\r\n")
	if owner == "" {
		return "", ErrNoOwner
	}
	return owner, nil
}
