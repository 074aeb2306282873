package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/hkdf"
)

// Контексты HKDF для разделения мастер-ключа.
const (
	infoEncryption = "memokeeper/client-blob/encryption"
	infoHMAC       = "memokeeper/client-blob/hmac"
)

// BlobKeys — пара ключей для клиентского блоба: шифрование и HMAC.
type BlobKeys struct {
	Enc  []byte
	HMAC []byte
}

// Zero затирает оба ключа.
func (k *BlobKeys) Zero() {
	if k == nil {
		return
	}
	clear(k.Enc)
	clear(k.HMAC)
}

// LoadOrCreateKey загружает мастер-ключ из файла path или создаёт новый случайный.
func LoadOrCreateKey(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("empty key path")
	}
	if b, err := os.ReadFile(path); err == nil {
		if len(b) != KeyLen {
			return nil, fmt.Errorf("%w: %s", ErrInvalidKey, path)
		}
		return b, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	// создаём новый ключ
	key := make([]byte, KeyLen)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	// записываем с ограниченными правами доступа
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, err
	}
	return key, nil
}

// DeriveBlobKeys выводит из мастер-ключа независимые ключи шифрования и HMAC (HKDF-SHA256).
func DeriveBlobKeys(master []byte) (BlobKeys, error) {
	if len(master) != KeyLen {
		return BlobKeys{}, fmt.Errorf("%w: want %d, got %d", ErrInvalidKey, KeyLen, len(master))
	}
	enc, err := expand(master, infoEncryption)
	if err != nil {
		return BlobKeys{}, err
	}
	mac, err := expand(master, infoHMAC)
	if err != nil {
		clear(enc)
		return BlobKeys{}, err
	}
	return BlobKeys{Enc: enc, HMAC: mac}, nil
}

func expand(master []byte, info string) ([]byte, error) {
	out := make([]byte, KeyLen)
	r := hkdf.New(sha256.New, master, nil, []byte(info))
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}
