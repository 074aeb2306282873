package blob

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// maxDecodedSize ограничивает размер распакованного документа.
const maxDecodedSize = 16 << 20

// compress дописывает к prefix zstd-кадр с содержимым src.
// Сам prefix не сжимается.
func compress(prefix, src []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderCRC(true))
	if err != nil {
		return nil, fmt.Errorf("could not create zstd writer: %w", err)
	}
	defer func() { _ = enc.Close() }()

	dst := make([]byte, len(prefix), len(prefix)+enc.MaxEncodedSize(len(src)))
	copy(dst, prefix)
	return enc.EncodeAll(src, dst), nil
}

func decompress(src []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxDecodedSize),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}
	return out, nil
}
