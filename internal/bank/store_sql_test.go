package bank_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/edukita/educbt-studio/internal/bank"
	"github.com/edukita/educbt-studio/internal/db"
	"github.com/edukita/educbt-studio/internal/question"
	syncx "github.com/edukita/educbt-studio/internal/sync"
)

func openSQLite(t *testing.T) *bank.SQLStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "studio.db")
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return bank.NewSQLStore(dbh, "sqlite")
}

func TestSQLStoreReplaceAndLoad(t *testing.T) {
	ctx := context.Background()
	store := openSQLite(t)

	seedQ := question.Question{
		ID: "q1", Type: question.TypePilihanGanda, Subject: "IPA",
		Text: "Soal pertama", Options: []string{"a", "b"},
		CorrectAnswer: question.IndexKey(1), QuizToken: "TOK", Order: 1,
	}
	if _, err := store.Replace(ctx, "ws1", "generate", func([]question.Question) []question.Question {
		return []question.Question{seedQ}
	}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	qs, err := store.Load(ctx, "ws1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(qs) != 1 || qs[0].ID != "q1" {
		t.Fatalf("loaded %+v", qs)
	}
	if !qs[0].CorrectAnswer.Equal(question.IndexKey(1)) {
		t.Errorf("answer did not survive storage: %+v", qs[0].CorrectAnswer)
	}

	sums, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sums) != 1 || sums[0].Subject != "IPA" || sums[0].Active != 1 {
		t.Errorf("summaries = %+v", sums)
	}
}

func TestSQLStoreAuditTrail(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "studio.db")
	dbh, err := db.Open(ctx, db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	defer dbh.Close()
	store := bank.NewSQLStore(dbh, "sqlite")

	keep := func(qs []question.Question) []question.Question { return qs }
	if _, err := store.Replace(ctx, "ws1", "generate", keep); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, err := store.Replace(ctx, "ws1", "shuffle", keep); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, err := store.Replace(ctx, "ws2", "import", keep); err != nil {
		t.Fatalf("replace: %v", err)
	}

	events := syncx.NewEventRepo(dbh)
	evs, err := events.Recent(ctx, "ws1", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(evs), evs)
	}
	if evs[0].Type != "shuffle" || evs[1].Type != "generate" {
		t.Errorf("not newest first: %+v", evs)
	}
	if evs[0].Seq <= evs[1].Seq {
		t.Errorf("seq not increasing: %d then %d", evs[1].Seq, evs[0].Seq)
	}
	if evs[0].SiteID != "local" {
		t.Errorf("site = %q", evs[0].SiteID)
	}
}
