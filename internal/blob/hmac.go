package blob

import (
	"crypto/hmac"
	"encoding/base64"

	"MemoKeeper/internal/crypto"
)

// ZeroHMACBase64 — base64 от 32 нулевых байт. Означает «блоб ещё не сохранён»
// и не выдаётся ComputeHMAC для реальных данных.
const ZeroHMACBase64 = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

// ComputeHMAC возвращает base64(HMAC-SHA256(key, data)).
func ComputeHMAC(key, data []byte) string {
	return base64.StdEncoding.EncodeToString(crypto.HMACSHA256(key, data))
}

// IsZeroHMAC сообщает, является ли hmac сторожевым значением ZeroHMACBase64.
func IsZeroHMAC(tag string) bool { return tag == ZeroHMACBase64 }

// VerifyHMAC сравнивает tag с HMAC от data за постоянное время.
func VerifyHMAC(key, data []byte, tag string) bool {
	return hmac.Equal([]byte(ComputeHMAC(key, data)), []byte(tag))
}
