package blob

// Save шифрует документ ключом key и считает HMAC шифртекста ключом hmacKey.
// Возвращает шифртекст и base64-HMAC для выгрузки на сервер.
func Save(doc *Document, key, hmacKey []byte) ([]byte, string, error) {
	ciphertext, err := Encode(doc, key)
	if err != nil {
		return nil, "", err
	}
	return ciphertext, ComputeHMAC(hmacKey, ciphertext), nil
}

// Load заменяет содержимое doc документом из ciphertext.
// При ошибке doc не меняется.
func Load(doc *Document, key, ciphertext []byte) error {
	parsed, err := Decode(ciphertext, key)
	if err != nil {
		return err
	}
	doc.namespaces = parsed.namespaces
	return nil
}
