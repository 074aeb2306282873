package model

import "time"

// ClientBlob — серверная копия клиентского блоба. Сервер хранит шифртекст
// как есть и не может его прочитать.
type ClientBlob struct {
	ID    string `gorm:"primaryKey;type:uuid"`
	Owner string `gorm:"not null;uniqueIndex"`

	Cipher []byte `gorm:"not null"`
	HMAC   string `gorm:"not null;size:44"` // base64(HMAC-SHA256) от Cipher

	Version int64 `gorm:"not null;default:1"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
