package repo

import (
	"MemoKeeper/internal/blob"
	"MemoKeeper/internal/model"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound — для владельца ещё нет сохранённого блоба.
	ErrNotFound = errors.New("client blob not found")
	// ErrStaleHMAC — prevHMAC не совпадает с сохранённым: блоб успел измениться.
	ErrStaleHMAC = errors.New("client blob hmac mismatch")
)

// BlobRepository — хранилище пар (шифртекст, hmac) по владельцу.
type BlobRepository interface {
	// Get возвращает сохранённый блоб или ErrNotFound.
	Get(ctx context.Context, owner string) (*model.ClientBlob, error)

	// Put сохраняет блоб, если сохранённый hmac равен prevHMAC.
	// prevHMAC == blob.ZeroHMACBase64 означает «блоба ещё нет».
	// Возвращает новую версию записи.
	Put(ctx context.Context, owner string, cipher []byte, hmac, prevHMAC string) (int64, error)

	// Delete удаляет блоб владельца. Отсутствие записи ошибкой не считается.
	Delete(ctx context.Context, owner string) error
}

type blobRepo struct {
	db *gorm.DB
}

// NewBlobRepository создаёт реализацию репозитория для ClientBlob.
func NewBlobRepository(db *gorm.DB) BlobRepository {
	return &blobRepo{db: db}
}

func (r *blobRepo) Get(ctx context.Context, owner string) (*model.ClientBlob, error) {
	var b model.ClientBlob
	err := r.db.WithContext(ctx).Where("owner = ?", owner).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *blobRepo) Put(ctx context.Context, owner string, cipher []byte, hmac, prevHMAC string) (int64, error) {
	var version int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if blob.IsZeroHMAC(prevHMAC) {
			// первой записи ещё нет — вставляем, конфликт по owner значит, что нас опередили
			b := &model.ClientBlob{ID: uuid.NewString(), Owner: owner, Cipher: cipher, HMAC: hmac, Version: 1}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "owner"}},
				DoNothing: true,
			}).Create(b)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrStaleHMAC
			}
			version = 1
			return nil
		}

		var cur model.ClientBlob
		if err := tx.Where("owner = ?", owner).First(&cur).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStaleHMAC
			}
			return err
		}
		res := tx.Model(&model.ClientBlob{}).
			Where("owner = ? AND hmac = ?", owner, prevHMAC).
			Updates(map[string]any{
				"cipher":  cipher,
				"hmac":    hmac,
				"version": gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleHMAC
		}
		version = cur.Version + 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (r *blobRepo) Delete(ctx context.Context, owner string) error {
	return r.db.WithContext(ctx).Where("owner = ?", owner).Delete(&model.ClientBlob{}).Error
}
