// credstore задаёт контракт локального хранилища учётных данных.
//
// Хранилище — строковый key-value, переживающий перезапуск процесса и
// ограниченный рамками приложения. Никакой сети, никакой бизнес-логики:
// семантика ключей (user/token/refresh) — забота пакета session.
package credstore

import (
	"context"
	"errors"
)

// ErrNotFound — ключ отсутствует в хранилище.
var ErrNotFound = errors.New("not found")

// Store выполняет операции над записями хранилища.
type Store interface {
	// Get возвращает значение по ключу; ErrNotFound, если ключа нет.
	Get(ctx context.Context, key string) (string, error)
	// Set сохраняет значение; ошибка записи не проглатывается.
	Set(ctx context.Context, key, value string) error
	// Remove удаляет ключи; отсутствие любого из них — не ошибка.
	Remove(ctx context.Context, keys ...string) error
}
