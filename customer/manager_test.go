package customer

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockManager(t *testing.T) (*Manager, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	return &Manager{db: gdb, logger: zap.NewNop()}, mock
}

// TestSaveIsNotIdempotent asserts the documented behavior: two identical
// calls insert two distinct rows, nothing dedupes them.
func TestSaveIsNotIdempotent(t *testing.T) {
	m, mock := newMockManager(t)

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "customer_records"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	first := &CustomerRecord{Name: "Ravi", Email: "ravi@example.com", Mobile: "9999999999"}
	second := &CustomerRecord{Name: "Ravi", Email: "ravi@example.com", Mobile: "9999999999"}

	if err := m.Save(context.Background(), first); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := m.Save(context.Background(), second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	if first.ID == "" || second.ID == "" {
		t.Fatal("expected store-assigned identifiers")
	}
	if first.ID == second.ID {
		t.Fatal("expected two distinct records for identical input")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// TestListNewestFirst verifies the listing is ordered by creation time
// descending.
func TestListNewestFirst(t *testing.T) {
	m, mock := newMockManager(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "mobile", "created_at"}).
		AddRow("rec3", "Amit", "amit@example.com", "7777777777", now).
		AddRow("rec2", "Sana", "sana@example.com", "8888888888", now.Add(-time.Hour)).
		AddRow("rec1", "Ravi", "ravi@example.com", "9999999999", now.Add(-2*time.Hour))

	mock.ExpectQuery(`SELECT (.+) FROM "customer_records" ORDER BY created_at desc`).
		WillReturnRows(rows)

	records, err := m.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"rec3", "rec2", "rec1"} {
		if records[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, records[i].ID)
		}
	}
	if !records[0].CreatedAt.After(records[1].CreatedAt) {
		t.Fatal("expected newest record first")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// TestListEmpty verifies an empty store yields an empty, non-nil sequence.
func TestListEmpty(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectQuery(`SELECT (.+) FROM "customer_records" ORDER BY created_at desc`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "mobile", "created_at"}))

	records, err := m.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if records == nil {
		t.Fatal("expected an empty slice, got nil")
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
