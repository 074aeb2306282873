package blob

import (
	"errors"

	"MemoKeeper/internal/crypto"
)

// Ошибки Load/Decode. Оборачиваются через %w, проверяются errors.Is.
var (
	// ErrFormatTooShort — расшифрованный буфер не вмещает заголовок и тело.
	ErrFormatTooShort = errors.New("client blob: data too short")
	// ErrUnsupportedVersion — заголовок не совпадает с поддерживаемым.
	ErrUnsupportedVersion = errors.New("client blob: unsupported version")
	// ErrAuthentication — тег AES-GCM не прошёл проверку.
	ErrAuthentication = errors.New("client blob: authentication failed")
	// ErrCompression — тело не распаковывается.
	ErrCompression = errors.New("client blob: malformed compressed body")
	// ErrParse — распакованный текст не является документом.
	ErrParse = errors.New("client blob: malformed document")

	// ErrInvalidText — ключ или значение документа не является корректным UTF-8.
	ErrInvalidText = errors.New("client blob: invalid utf-8 text")
	// ErrInvalidKey — ключ шифрования неверной длины.
	ErrInvalidKey = crypto.ErrInvalidKey

	errLengthMismatch = errors.New("client blob: predicted and written length differ")
)
