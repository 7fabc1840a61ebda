package repository

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMemoryRevocationStore(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()
	expires := time.Now().Add(time.Hour)

	revoked, err := store.Contains(ctx, "jti-1")
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if revoked {
		t.Error("Contains before Add = true; want false")
	}

	if err := store.Add(ctx, "jti-1", expires); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// Idempotent.
	if err := store.Add(ctx, "jti-1", expires); err != nil {
		t.Fatalf("second Add: %v", err)
	}

	revoked, err = store.Contains(ctx, "jti-1")
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !revoked {
		t.Error("Contains after Add = false; want true")
	}
}

func TestMemoryRevocationStore_Concurrent(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()
	expires := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Add(ctx, "shared", expires)
			_, _ = store.Contains(ctx, "shared")
		}()
	}
	wg.Wait()

	revoked, err := store.Contains(ctx, "shared")
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !revoked {
		t.Error("Contains = false after concurrent adds; want true")
	}
}

func setupRevocationMock(t *testing.T) (*PostgresRevocationStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	store := NewPostgresRevocationStore(db)
	cleanup := func() { db.Close() }
	return store, mock, cleanup
}

func TestPostgresRevocation_Add(t *testing.T) {
	store, mock, cleanup := setupRevocationMock(t)
	defer cleanup()

	expires := time.Now().Add(time.Hour)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO revoked_tokens (jti, expires_at) VALUES ($1, $2)`)).
		WithArgs("jti-1", expires).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Add(context.Background(), "jti-1", expires); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresRevocation_AddError(t *testing.T) {
	store, mock, cleanup := setupRevocationMock(t)
	defer cleanup()

	expires := time.Now().Add(time.Hour)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO revoked_tokens (jti, expires_at) VALUES ($1, $2)`)).
		WithArgs("jti-1", expires).
		WillReturnError(errors.New("insert failed"))

	if err := store.Add(context.Background(), "jti-1", expires); err == nil {
		t.Error("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresRevocation_Contains(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"revoked", true},
		{"not revoked", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock, cleanup := setupRevocationMock(t)
			defer cleanup()

			mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = $1)`)).
				WithArgs("jti-1").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.want))

			revoked, err := store.Contains(context.Background(), "jti-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if revoked != tt.want {
				t.Errorf("Contains = %v; want %v", revoked, tt.want)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}

func TestPostgresRevocation_ContainsError(t *testing.T) {
	store, mock, cleanup := setupRevocationMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = $1)`)).
		WithArgs("jti-1").
		WillReturnError(errors.New("query failed"))

	if _, err := store.Contains(context.Background(), "jti-1"); err == nil {
		t.Error("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
