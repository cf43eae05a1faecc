// filestore — файловая реализация credstore.Store.
//
// Каждый ключ хранится отдельным файлом в каталоге приложения с правами
// 0600. Запись атомарна: значение пишется во временный файл и подменяется
// rename-ом, так что при падении процесса ключ либо целиком старый, либо
// целиком новый. Атомарности НАД несколькими ключами нет — это зона
// ответственности session.Manager (валидация "все ключи или ничего").
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/chillnow/chillnow-client/internal/credstore"
)

// Store — файловое key-value хранилище.
type Store struct {
	dir string
}

// New создаёт хранилище в каталоге dir (создаётся при необходимости, 0700).
func New(dir string) (*Store, error) {
	const op = "filestore.New"

	if dir == "" {
		return nil, fmt.Errorf("%s: empty dir", op)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{dir: dir}, nil
}

// Get возвращает значение ключа; credstore.ErrNotFound, если файла нет.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	const op = "filestore.Get"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	path, err := s.path(key)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", op, credstore.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(data), nil
}

// Set атомарно записывает значение ключа (tmp + rename).
func (s *Store) Set(ctx context.Context, key, value string) error {
	const op = "filestore.Set"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	path, err := s.path(key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Remove удаляет ключи; отсутствующие файлы пропускаются без ошибки.
func (s *Store) Remove(ctx context.Context, keys ...string) error {
	const op = "filestore.Remove"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var firstErr error
	for _, key := range keys {
		path, err := s.path(key)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if firstErr != nil {
		return fmt.Errorf("%s: %w", op, firstErr)
	}

	return nil
}

// path проверяет, что ключ — простое имя без разделителей,
// и отображает его в файл внутри каталога хранилища.
func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}

	return filepath.Join(s.dir, key), nil
}
