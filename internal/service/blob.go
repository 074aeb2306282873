package service

import (
	"MemoKeeper/internal/blob"
	"MemoKeeper/internal/crypto"
	"MemoKeeper/internal/repo"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrTampered — HMAC сохранённого шифртекста не совпал с пересчитанным.
var ErrTampered = errors.New("stored client blob failed hmac check")

// BlobService связывает клиентский документ с хранилищем блобов.
type BlobService struct {
	repo   repo.BlobRepository
	logger *zap.SugaredLogger
}

// NewBlobService создаёт сервис поверх репозитория блобов.
func NewBlobService(r repo.BlobRepository, logger *zap.SugaredLogger) *BlobService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &BlobService{repo: r, logger: logger}
}

// Load читает блоб владельца и расшифровывает его.
// Если блоба ещё нет — возвращает пустой документ и blob.ZeroHMACBase64.
func (s *BlobService) Load(ctx context.Context, owner string, keys crypto.BlobKeys) (*blob.Document, string, error) {
	stored, err := s.repo.Get(ctx, owner)
	if errors.Is(err, repo.ErrNotFound) {
		s.logger.Debugw("Load: no stored blob", "owner", owner)
		return blob.NewDocument(), blob.ZeroHMACBase64, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("load blob: %w", err)
	}

	if !blob.VerifyHMAC(keys.HMAC, stored.Cipher, stored.HMAC) {
		s.logger.Warnw("Load: hmac mismatch", "owner", owner, "version", stored.Version)
		return nil, "", ErrTampered
	}

	doc := blob.NewDocument()
	if err := blob.Load(doc, keys.Enc, stored.Cipher); err != nil {
		s.logger.Errorw("Load: decode failed", "owner", owner, "version", stored.Version, "error", err)
		return nil, "", fmt.Errorf("decode blob: %w", err)
	}
	s.logger.Debugw("Load: ok", "owner", owner, "version", stored.Version,
		"names", doc.Len(blob.SubaccountNames), "memos", doc.Len(blob.TxMemos))
	return doc, stored.HMAC, nil
}

// Save шифрует документ и сохраняет его, если сохранённый hmac всё ещё prevHMAC.
// Возвращает hmac новой версии. При гонке писателей — repo.ErrStaleHMAC.
func (s *BlobService) Save(ctx context.Context, owner string, doc *blob.Document, keys crypto.BlobKeys, prevHMAC string) (string, error) {
	cipher, hmac, err := blob.Save(doc, keys.Enc, keys.HMAC)
	if err != nil {
		return "", fmt.Errorf("encode blob: %w", err)
	}
	version, err := s.repo.Put(ctx, owner, cipher, hmac, prevHMAC)
	if err != nil {
		if errors.Is(err, repo.ErrStaleHMAC) {
			s.logger.Warnw("Save: stale hmac", "owner", owner)
		} else {
			s.logger.Errorw("Save: store failed", "owner", owner, "error", err)
		}
		return "", fmt.Errorf("store blob: %w", err)
	}
	s.logger.Debugw("Save: ok", "owner", owner, "version", version, "size", len(cipher))
	return hmac, nil
}

// Update загружает документ, применяет fn и сохраняет результат
// поверх только что прочитанной версии.
func (s *BlobService) Update(ctx context.Context, owner string, keys crypto.BlobKeys, fn func(doc *blob.Document)) (string, error) {
	doc, prev, err := s.Load(ctx, owner, keys)
	if err != nil {
		return "", err
	}
	fn(doc)
	return s.Save(ctx, owner, doc, keys, prev)
}

// Reset удаляет сохранённый блоб владельца; следующий Load вернёт пустой документ.
func (s *BlobService) Reset(ctx context.Context, owner string) error {
	if err := s.repo.Delete(ctx, owner); err != nil {
		s.logger.Errorw("Reset: delete failed", "owner", owner, "error", err)
		return fmt.Errorf("delete blob: %w", err)
	}
	s.logger.Debugw("Reset: ok", "owner", owner)
	return nil
}
