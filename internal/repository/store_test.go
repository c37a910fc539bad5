package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/workova-backend/internal/models"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	job := models.Job{
		ID:         "job-1",
		CustomerID: "u1",
		Title:      "Fix leaky faucet",
		Status:     models.JobStatusOpen,
		Photos:     []string{},
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}

	err := store.Update(ctx, func(tx *Tx) error {
		jobs, err := tx.Jobs()
		if err != nil {
			return err
		}
		return tx.SetJobs(append(jobs, job))
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	err = store.View(ctx, func(tx *Tx) error {
		jobs, err := tx.Jobs()
		if err != nil {
			return err
		}
		if len(jobs) != 1 {
			t.Fatalf("ожидалась одна заявка, получено %d", len(jobs))
		}
		if jobs[0].ID != job.ID || jobs[0].Title != job.Title {
			t.Fatalf("заявка после чтения не совпадает: %+v", jobs[0])
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestStoreMissingCollectionIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.View(context.Background(), func(tx *Tx) error {
		jobs, err := tx.Jobs()
		if err != nil {
			return err
		}
		if len(jobs) != 0 {
			t.Fatalf("пустое хранилище вернуло %d заявок", len(jobs))
		}
		users, err := tx.Users()
		if err != nil {
			return err
		}
		if len(users) != 0 {
			t.Fatalf("пустое хранилище вернуло %d пользователей", len(users))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestStoreCorruptedCollectionReadsAsEmpty(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		t.Fatalf("прямое подключение: %v", err)
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		"INSERT INTO collections (name, data) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET data = excluded.data",
		CollectionJobs, []byte("{not json"))
	if err != nil {
		t.Fatalf("запись мусора: %v", err)
	}

	err = store.View(ctx, func(tx *Tx) error {
		jobs, err := tx.Jobs()
		if err != nil {
			return err
		}
		if len(jobs) != 0 {
			t.Fatalf("повреждённая коллекция должна читаться как пустая, получено %d", len(jobs))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestStoreUpdateRollsBackOnError(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.Update(ctx, func(tx *Tx) error {
		if err := tx.SetSessionUserID("u1"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("ожидалась ошибка fn, получено %v", err)
	}

	err = store.View(ctx, func(tx *Tx) error {
		id, err := tx.SessionUserID()
		if err != nil {
			return err
		}
		if id != "" {
			t.Fatalf("запись не откатилась: session = %q", id)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestStoreSessionLifecycle(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Update(ctx, func(tx *Tx) error { return tx.SetSessionUserID("u1") }); err != nil {
		t.Fatalf("SetSessionUserID: %v", err)
	}
	if err := store.Update(ctx, func(tx *Tx) error { return tx.ClearSession() }); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}

	err := store.View(ctx, func(tx *Tx) error {
		id, err := tx.SessionUserID()
		if err != nil {
			return err
		}
		if id != "" {
			t.Fatalf("после ClearSession ожидалась пустая сессия, получено %q", id)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}
