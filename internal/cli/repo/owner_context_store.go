package repo

// OwnerContextStore абстракция для хранения контекста CLI (последний выбранный владелец).
type OwnerContextStore interface {
	SaveOwner(owner string) error
	LoadOwner() (string, error)
}
