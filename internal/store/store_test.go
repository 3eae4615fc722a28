package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/caesar/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListRuns(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Unix(1700000000, 0)
	runs := []model.Run{
		{CreatedAt: base, Mode: model.ModeEncrypt, Key: 3, InputChars: 11},
		{CreatedAt: base.Add(time.Minute), Mode: model.ModeBrute, InputChars: 40, BestKey: 7, BestScore: 120},
		{CreatedAt: base.Add(2 * time.Minute), Mode: model.ModeDecrypt, Key: -2, InputChars: 5},
	}
	var ids []int64
	for _, run := range runs {
		id, err := st.InsertRun(ctx, run)
		if err != nil {
			t.Fatalf("insert run: %v", err)
		}
		ids = append(ids, id)
	}

	got, err := st.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(got))
	}
	if got[0].ID != ids[2] || got[2].ID != ids[0] {
		t.Fatalf("expected newest first, got %+v", got)
	}
	if got[1].Mode != model.ModeBrute || got[1].BestKey != 7 || got[1].BestScore != 120 {
		t.Fatalf("unexpected brute run: %+v", got[1])
	}
	if got[0].Key != -2 || !got[0].CreatedAt.Equal(base.Add(2*time.Minute)) {
		t.Fatalf("unexpected decrypt run: %+v", got[0])
	}

	limited, err := st.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != ids[2] {
		t.Fatalf("unexpected limited runs: %+v", limited)
	}
}

func TestInsertRunDefaultsTimestamp(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	if _, err := st.InsertRun(ctx, model.Run{Mode: model.ModeEncrypt, Key: 1}); err != nil {
		t.Fatalf("insert run: %v", err)
	}
	got, err := st.ListRuns(ctx, 1)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(got) != 1 || got[0].CreatedAt.Before(before) {
		t.Fatalf("expected a current timestamp, got %+v", got)
	}
}

func TestListRunsEmpty(t *testing.T) {
	st := openTestStore(t)
	got, err := st.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no runs, got %d", len(got))
	}
}
