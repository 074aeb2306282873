package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Хранилище блобов
	DatabaseDSN  string `env:"DATABASE_URI"`
	ClientDBPath string `env:"CLIENT_DB_PATH"`

	// Владелец блоба и его мастер-ключ
	Owner   string `env:"BLOB_OWNER"`
	KeyFile string `env:"KEY_FILE"`

	Debug   bool `env:"DEBUG"`
	Version bool `env:"-"` // show client version and exit (flag only)

	// OwnerSet — владелец задан явно (env или флаг), а не подставлен по умолчанию.
	OwnerSet bool `env:"-"`
	// InvalidOwner — явно заданный, но недопустимый владелец; команды с ним не выполняются.
	InvalidOwner string `env:"-"`

	keyFileDerived bool
}

// DefaultOwner — владелец, если другой не задан и не запомнен.
const DefaultOwner = "default"

var ownerRe = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]*$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги переопределяют значения из env
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (sqlite path или postgres DSN)")
	flag.StringVar(&cfg.ClientDBPath, "client-db", cfg.ClientDBPath, "каталог клиентских данных")
	flag.StringVar(&cfg.Owner, "owner", cfg.Owner, "владелец блоба (letters, digits, . _ -)")
	flag.StringVar(&cfg.KeyFile, "key-file", cfg.KeyFile, "путь к файлу мастер-ключа")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	// Defaults
	cfg.OwnerSet = ValidOwner(cfg.Owner)
	if !cfg.OwnerSet {
		if cfg.Owner != "" {
			cfg.InvalidOwner = cfg.Owner
		}
		cfg.Owner = DefaultOwner
	}
	if cfg.ClientDBPath == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			cfgDir = os.TempDir()
		}
		cfg.ClientDBPath = filepath.Join(cfgDir, "MemoKeeper")
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = filepath.Join(cfg.ClientDBPath, "memokeeper.db")
	}
	if cfg.KeyFile == "" {
		cfg.keyFileDerived = true
		cfg.KeyFile = cfg.ownerKeyFile()
	}

	return cfg
}

// Validate возвращает ошибку, если владелец был задан явно, но некорректно.
func (c *Config) Validate() error {
	if c.InvalidOwner != "" {
		return fmt.Errorf("invalid owner %q (allowed: letters, digits, . _ -)", c.InvalidOwner)
	}
	return nil
}

// ValidOwner сообщает, годится ли имя владельца (оно же имя каталога ключа).
func ValidOwner(owner string) bool {
	return ownerRe.MatchString(owner)
}

// SetOwner меняет владельца. Путь к ключу, выведенный по умолчанию, следует за владельцем;
// явно заданный KEY_FILE / -key-file не трогаем.
func (c *Config) SetOwner(owner string) error {
	if !ValidOwner(owner) {
		return fmt.Errorf("invalid owner %q (allowed: letters, digits, . _ -)", owner)
	}
	c.Owner = owner
	if c.keyFileDerived {
		c.KeyFile = c.ownerKeyFile()
	}
	return nil
}

func (c *Config) ownerKeyFile() string {
	return filepath.Join(c.ClientDBPath, c.Owner, "key.bin")
}
