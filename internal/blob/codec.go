package blob

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"MemoKeeper/internal/crypto"
)

// HeaderSize — размер заголовка: 1 байт версии и 3 зарезервированных.
const HeaderSize = 4

// Version — единственная поддерживаемая версия формата.
const Version = 1

var header = [HeaderSize]byte{Version, 0, 0, 0}

// Encode сериализует документ, сжимает тело и шифрует header||body ключом key.
// Ошибки: ErrInvalidText для текста не в UTF-8, ErrInvalidKey для ключа неверной длины.
func Encode(doc *Document, key []byte) ([]byte, error) {
	text, err := doc.marshal()
	if err != nil {
		return nil, err
	}
	plain, err := compress(header[:], text)
	clear(text)
	if err != nil {
		return nil, err
	}
	defer clear(plain)

	out, err := sized(crypto.EncryptGetLength(len(plain)), func(buf []byte) (int, error) {
		return crypto.Encrypt(key, plain, buf)
	})
	if errors.Is(err, errLengthMismatch) {
		panic(err)
	}
	return out, err
}

// Decode расшифровывает и разбирает конверт. Ошибки: ErrFormatTooShort,
// ErrAuthentication, ErrUnsupportedVersion, ErrCompression, ErrParse, ErrInvalidKey.
func Decode(ciphertext, key []byte) (*Document, error) {
	n := crypto.DecryptGetLength(len(ciphertext))
	if n < HeaderSize+1 {
		return nil, fmt.Errorf("%w: %d bytes after decryption", ErrFormatTooShort, n)
	}
	plain, err := sized(n, func(buf []byte) (int, error) {
		return crypto.Decrypt(key, ciphertext, buf)
	})
	if err != nil {
		if errors.Is(err, crypto.ErrDecrypt) {
			return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
		return nil, err
	}
	defer clear(plain)

	if !bytes.Equal(plain[:HeaderSize], header[:]) {
		return nil, fmt.Errorf("%w: header %v", ErrUnsupportedVersion, plain[:HeaderSize])
	}

	text, err := decompress(plain[HeaderSize:])
	if err != nil {
		return nil, err
	}
	defer clear(text)

	namespaces, err := parseDocument(text)
	if err != nil {
		return nil, err
	}
	return &Document{namespaces: namespaces}, nil
}

// sized выделяет ровно n байт, заполняет их через fill и проверяет,
// что fill записал столько же. При любой ошибке буфер затирается.
func sized(n int, fill func(buf []byte) (int, error)) ([]byte, error) {
	buf := make([]byte, n)
	written, err := fill(buf)
	if err == nil && written != n {
		err = fmt.Errorf("%w: predicted %d, written %d", errLengthMismatch, n, written)
	}
	if err != nil {
		clear(buf)
		return nil, err
	}
	return buf, nil
}

// marshal строит канонический JSON: {"0":{...},"1":{...}} с отсортированными ключами.
// encoding/json молча заменяет битый UTF-8 на U+FFFD, поэтому текст проверяется заранее.
func (d *Document) marshal() ([]byte, error) {
	obj := make(map[string]map[string]string, len(knownNamespaces)+len(d.namespaces))
	for _, ns := range knownNamespaces {
		obj[ns.key()] = map[string]string{}
	}
	for ns, m := range d.namespaces {
		if len(m) == 0 {
			continue
		}
		for k, v := range m {
			if !utf8.ValidString(k) {
				return nil, fmt.Errorf("%w: namespace %d key %q", ErrInvalidText, ns, k)
			}
			if !utf8.ValidString(v) {
				return nil, fmt.Errorf("%w: namespace %d value for key %q", ErrInvalidText, ns, k)
			}
		}
		obj[ns.key()] = m
	}
	return json.Marshal(obj)
}

// parseDocument разбирает объект пространств имён. Старый формат
// (массив, где индекс — номер пространства) тоже принимается.
func parseDocument(text []byte) (map[Namespace]map[string]string, error) {
	out := make(map[Namespace]map[string]string)
	put := func(ns Namespace, m map[string]string) {
		for k, v := range m {
			if v == ns.Default() {
				delete(m, k)
			}
		}
		if len(m) > 0 {
			out[ns] = m
		}
	}

	if t := bytes.TrimLeft(text, " \t\r\n"); len(t) > 0 && t[0] == '[' {
		var arr []map[string]string
		if err := json.Unmarshal(text, &arr); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		for i, m := range arr {
			put(Namespace(i), m)
		}
		return out, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(text, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if obj == nil {
		// верхний уровень null
		return nil, fmt.Errorf("%w: top level is not an object", ErrParse)
	}
	for k, raw := range obj {
		idx, err := strconv.ParseUint(k, 10, 32)
		if err != nil || strconv.FormatUint(idx, 10) != k {
			// посторонние ключи верхнего уровня игнорируем
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("%w: namespace %s: %v", ErrParse, k, err)
		}
		put(Namespace(idx), m)
	}
	return out, nil
}
