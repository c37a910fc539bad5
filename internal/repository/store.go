package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ignatzorin/workova-backend/internal/logger"
	"github.com/ignatzorin/workova-backend/internal/pkg/apperror"
)

// Имена логических коллекций хранилища.
const (
	CollectionUsers    = "users"
	CollectionWorkers  = "workers"
	CollectionJobs     = "jobs"
	CollectionOffers   = "offers"
	CollectionChats    = "chats"
	CollectionMessages = "messages"
	CollectionReports  = "reports"
	CollectionSession  = "session"
)

// Store — локальное durable-хранилище: каждая коллекция лежит одной
// JSON-записью в таблице collections. Все операции верхнего уровня —
// это read-modify-write по именованным коллекциям; писатель всегда один,
// мьютекс сериализует критические секции целиком.
type Store struct {
	db *sqlx.DB
	mu sync.RWMutex
}

const schema = `
CREATE TABLE IF NOT EXISTS collections (
	name TEXT PRIMARY KEY,
	data BLOB NOT NULL
);`

// Open открывает (и при необходимости создаёт) файл хранилища.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("repository: не удалось создать каталог хранилища: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repository: не удалось открыть хранилище: %w", err)
	}

	// Один писатель за раз: для sqlite это и так обязательное условие.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repository: хранилище недоступно: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repository: не удалось создать схему: %w", err)
	}

	return &Store{db: db}, nil
}

// Close закрывает хранилище.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping проверяет доступность хранилища (для health-check).
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx — снимок хранилища внутри View/Update. Внутри Update все записи
// попадают в одну SQL-транзакцию: либо применяются целиком, либо
// откатываются.
type Tx struct {
	ctx context.Context
	q   sqlx.ExtContext
}

// View выполняет fn на консистентном снимке для чтения. Читатели не
// наблюдают частично применённых записей: Update держит эксклюзивную
// блокировку до коммита.
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&Tx{ctx: ctx, q: s.db})
}

// Update выполняет fn как критическую секцию: эксклюзивная блокировка
// хранилища плюс одна SQL-транзакция. Ошибка fn откатывает все записи.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStoreUnavailable, "хранилище недоступно")
	}

	if err := fn(&Tx{ctx: ctx, q: sqlTx}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStoreUnavailable, "не удалось зафиксировать запись")
	}
	return nil
}

// get декодирует коллекцию в out. Отсутствующая или повреждённая
// запись трактуется как пустая коллекция — чтение никогда не падает
// из-за мусора в данных.
func (t *Tx) get(name string, out any) error {
	var raw []byte
	err := sqlx.GetContext(t.ctx, t.q, &raw, "SELECT data FROM collections WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStoreUnavailable, "не удалось прочитать коллекцию "+name)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		// Повреждённые данные — считаем коллекцию пустой.
		if logger.Log != nil {
			logger.Log.WithField("collection", name).Warn("repository: повреждённая коллекция, читаем как пустую")
		}
		return nil
	}
	return nil
}

// put полностью заменяет коллекцию сериализованным значением.
func (t *Tx) put(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStoreUnavailable, "не удалось сериализовать коллекцию "+name)
	}

	_, err = t.q.ExecContext(t.ctx,
		"INSERT INTO collections (name, data) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET data = excluded.data",
		name, raw)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStoreUnavailable, "не удалось записать коллекцию "+name)
	}
	return nil
}

// remove удаляет коллекцию целиком.
func (t *Tx) remove(name string) error {
	if _, err := t.q.ExecContext(t.ctx, "DELETE FROM collections WHERE name = ?", name); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStoreUnavailable, "не удалось удалить коллекцию "+name)
	}
	return nil
}
