package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
)

// HMACSize — размер HMAC-SHA256 в байтах.
const HMACSize = sha256.Size

// HMACSHA256 считает HMAC-SHA256 от data на ключе key.
func HMACSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
