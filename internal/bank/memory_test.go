package bank_test

import (
	"context"
	"testing"

	"github.com/edukita/educbt-studio/internal/bank"
	"github.com/edukita/educbt-studio/internal/question"
)

func TestReplaceIsWholeList(t *testing.T) {
	ctx := context.Background()
	s := bank.NewInMemoryStore()

	_, err := s.Replace(ctx, "ws1", "import", func(qs []question.Question) []question.Question {
		if len(qs) != 0 {
			t.Fatalf("fresh workspace not empty: %v", qs)
		}
		return []question.Question{
			{ID: "a", Order: 1},
			{ID: "b", Order: 2},
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx, "ws1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "a" {
		t.Fatalf("load = %+v", got)
	}

	// mutating the loaded slice must not leak into the store
	got[0].ID = "mutated"
	got2, _ := s.Load(ctx, "ws1")
	if got2[0].ID != "a" {
		t.Fatalf("store aliased caller memory")
	}
}

func TestReplaceTrashFlow(t *testing.T) {
	ctx := context.Background()
	s := bank.NewInMemoryStore()

	_, _ = s.Replace(ctx, "ws1", "import", func([]question.Question) []question.Question {
		return []question.Question{{ID: "a", Order: 1}, {ID: "b", Order: 2}}
	})
	out, err := s.Replace(ctx, "ws1", "trash", func(qs []question.Question) []question.Question {
		for i := range qs {
			if qs[i].ID == "b" {
				qs[i].IsDeleted = true
			}
		}
		return qs
	})
	if err != nil {
		t.Fatal(err)
	}
	if !out[1].IsDeleted {
		t.Fatalf("soft delete not applied: %+v", out)
	}

	sums, _ := s.List(ctx)
	if len(sums) != 1 || sums[0].Active != 1 || sums[0].Trashed != 1 {
		t.Fatalf("summary = %+v", sums)
	}
}

func TestLoadUnknownWorkspace(t *testing.T) {
	s := bank.NewInMemoryStore()
	qs, err := s.Load(context.Background(), "nope")
	if err != nil || len(qs) != 0 {
		t.Fatalf("unknown workspace: qs=%v err=%v", qs, err)
	}
}
