package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// KeyLen — длина ключа для AES‑256 (в байтах).
const KeyLen = 32

const (
	nonceLen = 12
	tagLen   = 16
)

var (
	// ErrInvalidKey возвращается для ключа неверной длины.
	ErrInvalidKey = errors.New("invalid key length")
	// ErrShortBuffer — выходной буфер меньше предсказанной длины.
	ErrShortBuffer = errors.New("output buffer too small")
	// ErrCiphertextTooShort — шифртекст не вмещает даже nonce и тег.
	ErrCiphertextTooShort = errors.New("ciphertext too short")
	// ErrDecrypt — тег GCM не сошёлся (подмена, порча или чужой ключ).
	ErrDecrypt = errors.New("aes-gcm: message authentication failed")
)

// EncryptGetLength возвращает точную длину шифртекста для открытого текста длины n:
// nonce || sealed || tag.
func EncryptGetLength(n int) int {
	return nonceLen + n + tagLen
}

// DecryptGetLength возвращает длину открытого текста для шифртекста длины n.
// Для слишком короткого шифртекста возвращает 0.
func DecryptGetLength(n int) int {
	if n < nonceLen+tagLen {
		return 0
	}
	return n - nonceLen - tagLen
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeyLen {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrInvalidKey, KeyLen, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt шифрует plain с помощью AES‑GCM и пишет nonce||шифртекст в out.
// out должен иметь длину не меньше EncryptGetLength(len(plain)).
// Возвращает число записанных байт.
func Encrypt(key, plain, out []byte) (int, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return 0, err
	}
	need := EncryptGetLength(len(plain))
	if len(out) < need {
		return 0, fmt.Errorf("%w: need %d, have %d", ErrShortBuffer, need, len(out))
	}
	nonce := out[:nonceLen]
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return 0, err
	}
	sealed := gcm.Seal(out[nonceLen:nonceLen], nonce, plain, nil)
	return nonceLen + len(sealed), nil
}

// Decrypt расшифровывает data (nonce||шифртекст) в out.
// out должен иметь длину не меньше DecryptGetLength(len(data)).
func Decrypt(key, data, out []byte) (int, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return 0, err
	}
	if len(data) < nonceLen+tagLen {
		return 0, ErrCiphertextTooShort
	}
	need := DecryptGetLength(len(data))
	if len(out) < need {
		return 0, fmt.Errorf("%w: need %d, have %d", ErrShortBuffer, need, len(out))
	}
	plain, err := gcm.Open(out[:0], data[:nonceLen], data[nonceLen:], nil)
	if err != nil {
		return 0, ErrDecrypt
	}
	return len(plain), nil
}
