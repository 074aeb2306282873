package blob

import (
	"bytes"
	"testing"

	"MemoKeeper/internal/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testEncKey  = bytes.Repeat([]byte{0x11}, crypto.KeyLen)
	testHMACKey = bytes.Repeat([]byte{0x22}, crypto.KeyLen)
)

// seal шифрует произвольный открытый текст, минуя Encode.
func seal(t *testing.T, plain []byte) []byte {
	t.Helper()
	out := make([]byte, crypto.EncryptGetLength(len(plain)))
	n, err := crypto.Encrypt(testEncKey, plain, out)
	require.NoError(t, err)
	require.Equal(t, len(out), n)
	return out
}

// envelope собирает header||zstd(body) и шифрует.
func envelope(t *testing.T, hdr []byte, body string) []byte {
	t.Helper()
	plain, err := compress(hdr, []byte(body))
	require.NoError(t, err)
	return seal(t, plain)
}

func sampleDocument() *Document {
	d := NewDocument()
	d.SetSubaccountName(0, "savings")
	d.SetSubaccountName(1, "Кошелёк 🚀")
	d.SetSubaccountName(4294967295, "last")
	d.SetTxMemo("deadbeef", "rent")
	d.SetTxMemo("00ff", `quotes " and \ backslash <tag>`)
	return d
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for name, doc := range map[string]*Document{
		"empty":  NewDocument(),
		"sample": sampleDocument(),
	} {
		t.Run(name, func(t *testing.T) {
			ct, err := Encode(doc, testEncKey)
			require.NoError(t, err)

			got, err := Decode(ct, testEncKey)
			require.NoError(t, err)
			assert.Equal(t, doc.Entries(SubaccountNames), got.Entries(SubaccountNames))
			assert.Equal(t, doc.Entries(TxMemos), got.Entries(TxMemos))
		})
	}
}

func TestEncode_LargeDocumentCompresses(t *testing.T) {
	d := NewDocument()
	for i := 0; i < 2000; i++ {
		d.SetSubaccountName(uint32(i), "same label for every subaccount")
	}
	text, err := d.marshal()
	require.NoError(t, err)

	ct, err := Encode(d, testEncKey)
	require.NoError(t, err)
	assert.Less(t, len(ct), len(text)/4)

	got, err := Decode(ct, testEncKey)
	require.NoError(t, err)
	assert.Equal(t, 2000, got.Len(SubaccountNames))
}

func TestDecode_TamperDetection(t *testing.T) {
	ct, err := Encode(sampleDocument(), testEncKey)
	require.NoError(t, err)

	for i := range ct {
		tampered := bytes.Clone(ct)
		tampered[i] ^= 0x01
		_, err := Decode(tampered, testEncKey)
		if !assert.ErrorIs(t, err, ErrAuthentication, "byte %d", i) {
			return
		}
	}
}

func TestDecode_WrongKey(t *testing.T) {
	ct, err := Encode(sampleDocument(), testEncKey)
	require.NoError(t, err)

	_, err = Decode(ct, testHMACKey)
	assert.ErrorIs(t, err, ErrAuthentication)

	_, err = Decode(ct, []byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = Encode(sampleDocument(), []byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestDecode_VersionRejection(t *testing.T) {
	const body = `{"0":{"0":"savings"},"1":{}}`

	// контроль: корректный заголовок проходит
	_, err := Decode(envelope(t, []byte{1, 0, 0, 0}, body), testEncKey)
	require.NoError(t, err)

	for _, hdr := range [][]byte{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{1, 1, 0, 0},
		{1, 0, 0, 1},
	} {
		_, err := Decode(envelope(t, hdr, body), testEncKey)
		assert.ErrorIs(t, err, ErrUnsupportedVersion, "header %v", hdr)
	}
}

func TestDecode_LengthGuard(t *testing.T) {
	for _, plain := range [][]byte{
		{},
		{1, 0, 0},
		{1, 0, 0, 0}, // только заголовок, без тела
	} {
		_, err := Decode(seal(t, plain), testEncKey)
		assert.ErrorIs(t, err, ErrFormatTooShort, "plaintext %v", plain)
	}

	// шифртекст короче nonce+тег
	for _, ct := range [][]byte{nil, {1, 2, 3}, make([]byte, 27)} {
		_, err := Decode(ct, testEncKey)
		assert.ErrorIs(t, err, ErrFormatTooShort)
	}
}

func TestDecode_CompressionError(t *testing.T) {
	plain := append([]byte{1, 0, 0, 0}, []byte("definitely not zstd")...)
	_, err := Decode(seal(t, plain), testEncKey)
	assert.ErrorIs(t, err, ErrCompression)

	// усечённый zstd-кадр
	good, err := compress([]byte{1, 0, 0, 0}, []byte(`{"0":{"1":"x"},"1":{}}`))
	require.NoError(t, err)
	cut := HeaderSize + (len(good)-HeaderSize)/2
	_, err = Decode(seal(t, good[:cut]), testEncKey)
	assert.ErrorIs(t, err, ErrCompression)
}

func TestDecode_ParseError(t *testing.T) {
	for _, body := range []string{
		`not json`,
		`{"0":`,
		`"string"`,
		`{"0":["a"]}`,
		`{"1":{"deadbeef":42}}`,
		`[{"0":1}]`,
		`null`,
		` null `,
		`42`,
	} {
		_, err := Decode(envelope(t, []byte{1, 0, 0, 0}, body), testEncKey)
		assert.ErrorIs(t, err, ErrParse, "body %s", body)
	}
}

func TestDecode_TolerantShapes(t *testing.T) {
	hdr := []byte{1, 0, 0, 0}

	// отсутствующие пространства имён — пустые
	d, err := Decode(envelope(t, hdr, `{"1":{"ab":"memo"}}`), testEncKey)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len(SubaccountNames))
	assert.Equal(t, "memo", d.GetTxMemo("ab"))

	// посторонние ключи верхнего уровня и null игнорируются
	d, err = Decode(envelope(t, hdr, `{"extra":[1,2],"0":null,"1":{"ab":"m"}}`), testEncKey)
	require.NoError(t, err)
	assert.Equal(t, "m", d.GetTxMemo("ab"))

	// значения по умолчанию отбрасываются при разборе
	d, err = Decode(envelope(t, hdr, `{"0":{"3":"","4":"four"},"1":{}}`), testEncKey)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"4": "four"}, d.Entries(SubaccountNames))

	// старый формат: массив пространств имён
	d, err = Decode(envelope(t, hdr, `[{"0":"savings"},{"deadbeef":"rent"}]`), testEncKey)
	require.NoError(t, err)
	assert.Equal(t, "savings", d.GetSubaccountName(0))
	assert.Equal(t, "rent", d.GetTxMemo("deadbeef"))

	d, err = Decode(envelope(t, hdr, `[null,{"ab":"x"}]`), testEncKey)
	require.NoError(t, err)
	assert.Equal(t, "x", d.GetTxMemo("ab"))
}

func TestDecode_UnknownNamespacePreserved(t *testing.T) {
	hdr := []byte{1, 0, 0, 0}
	d, err := Decode(envelope(t, hdr, `{"0":{},"1":{},"2":{"k":"v"}}`), testEncKey)
	require.NoError(t, err)
	assert.Equal(t, "v", d.Get(Namespace(2), "k"))

	// повторное сохранение не теряет неизвестное пространство
	ct, err := Encode(d, testEncKey)
	require.NoError(t, err)
	d2, err := Decode(ct, testEncKey)
	require.NoError(t, err)
	assert.Equal(t, "v", d2.Get(Namespace(2), "k"))
}

func TestSized_LengthMismatch(t *testing.T) {
	buf, err := sized(8, func(b []byte) (int, error) {
		copy(b, "secret!!")
		return 7, nil
	})
	assert.Nil(t, buf)
	assert.ErrorIs(t, err, errLengthMismatch)

	buf, err = sized(3, func(b []byte) (int, error) { return len(b), nil })
	assert.NoError(t, err)
	assert.Len(t, buf, 3)
}

func TestEncode_InvalidUTF8Rejected(t *testing.T) {
	for name, fill := range map[string]func(d *Document){
		"value": func(d *Document) { d.SetTxMemo("ab", "x\xffy") },
		"key":   func(d *Document) { d.SetTxMemo("\xfe", "k") },
		"name":  func(d *Document) { d.SetSubaccountName(3, "\xc3") },
		"unknown namespace": func(d *Document) { d.Set(Namespace(5), "k", "\x80") },
	} {
		t.Run(name, func(t *testing.T) {
			d := NewDocument()
			d.SetSubaccountName(0, "ok")
			fill(d)

			ct, err := Encode(d, testEncKey)
			assert.ErrorIs(t, err, ErrInvalidText)
			assert.Nil(t, ct)

			ct, tag, err := Save(d, testEncKey, testHMACKey)
			assert.ErrorIs(t, err, ErrInvalidText)
			assert.Nil(t, ct)
			assert.Empty(t, tag)
		})
	}

	// корректный многобайтовый текст проходит без искажений
	d := NewDocument()
	d.SetTxMemo("ab", "аренда ✓")
	ct, err := Encode(d, testEncKey)
	require.NoError(t, err)
	got, err := Decode(ct, testEncKey)
	require.NoError(t, err)
	assert.Equal(t, d.Entries(TxMemos), got.Entries(TxMemos))
}
