package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/daylog/internal/day"
	"github.com/papapumpkin/daylog/internal/hierarchy"
)

// testStore opens a temporary store and registers cleanup.
func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open(%q): %v", path, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates tables in WAL mode", func(t *testing.T) {
		t.Parallel()
		s := testStore(t)

		var mode string
		if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
			t.Fatalf("query journal_mode: %v", err)
		}
		if mode != "wal" {
			t.Errorf("journal_mode = %q, want wal", mode)
		}

		tables := map[string]bool{"days": false, "time_records": false, "parent_child": false}
		rows, err := s.db.Query("SELECT name FROM sqlite_master WHERE type='table'")
		if err != nil {
			t.Fatalf("query sqlite_master: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				t.Fatalf("scan: %v", err)
			}
			tables[name] = true
		}
		for name, found := range tables {
			if !found {
				t.Errorf("table %q not created", name)
			}
		}
	})

	t.Run("reopen is idempotent", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "again.db")
		for i := 0; i < 2; i++ {
			s, err := Open(context.Background(), path)
			if err != nil {
				t.Fatalf("open #%d: %v", i+1, err)
			}
			s.Close()
		}
	})
}

func TestSaveAndLoadDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := testStore(t)

	rec := day.Record{
		Date:   "20250101",
		Status: true,
		Getup:  "07:30",
		Remark: "test",
		Activities: []day.Interval{
			{Start: "08:00", End: "10:00", Label: "study_math_calculus", Duration: 7200},
			{Start: "07:30", End: "08:00", Label: "routine_bath", Duration: 1800},
		},
	}
	if err := s.SaveDays(ctx, []day.Record{rec}, nil); err != nil {
		t.Fatalf("SaveDays: %v", err)
	}

	got, err := s.Day(ctx, "20250101")
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	want := rec
	want.Activities = []day.Interval{rec.Activities[1], rec.Activities[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Day mismatch (-want +got):\n%s", diff)
	}

	ok, err := s.Exists(ctx, "20250101")
	if err != nil || !ok {
		t.Errorf("Exists = %v, %v", ok, err)
	}
}

func TestSaveDaysUpserts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := testStore(t)

	first := day.Record{Date: "20250101", Remark: "old", Getup: "07:00", Activities: []day.Interval{
		{Start: "07:00", End: "08:00", Label: "routine_bath", Duration: 3600},
		{Start: "09:00", End: "10:00", Label: "code_go", Duration: 3600},
	}}
	second := day.Record{Date: "20250101", Status: true, Remark: "new", Activities: []day.Interval{
		{Start: "09:00", End: "09:30", Label: "study_math", Duration: 1800},
	}}
	for _, r := range []day.Record{first, second} {
		if err := s.SaveDays(ctx, []day.Record{r}, nil); err != nil {
			t.Fatalf("SaveDays: %v", err)
		}
	}

	got, err := s.Day(ctx, "20250101")
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if !got.Status || got.Remark != "new" || got.Getup != "" {
		t.Errorf("headers not replaced: %+v", got)
	}
	var labels []string
	for _, a := range got.Activities {
		labels = append(labels, a.Label)
	}
	if diff := cmp.Diff([]string{"routine_bath", "study_math"}, labels); diff != "" {
		t.Errorf("intervals mismatch (-want +got):\n%s", diff)
	}
}

func TestDayNotFound(t *testing.T) {
	t.Parallel()
	s := testStore(t)

	_, err := s.Day(context.Background(), "19990101")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Day err = %v, want ErrNotFound", err)
	}
	ok, err := s.Exists(context.Background(), "19990101")
	if err != nil || ok {
		t.Errorf("Exists = %v, %v; want false, nil", ok, err)
	}
}

func TestRange(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := testStore(t)

	recs := []day.Record{
		{Date: "20250103", Activities: []day.Interval{{Start: "08:00", End: "09:00", Label: "code_go", Duration: 3600}}},
		{Date: "20250101"},
		{Date: "20250201", Status: true},
	}
	if err := s.SaveDays(ctx, recs, nil); err != nil {
		t.Fatalf("SaveDays: %v", err)
	}

	got, err := s.Range(ctx, "20250101", "20250131")
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(got) != 2 || got[0].Date != "20250101" || got[1].Date != "20250103" {
		t.Fatalf("Range = %+v", got)
	}
	if len(got[0].Activities) != 0 || len(got[1].Activities) != 1 {
		t.Errorf("activities not attached to the right day: %+v", got)
	}
}

func TestParentMapFirstWriteWins(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := testStore(t)

	h := hierarchy.NewBuilder(hierarchy.DefaultTopLevel())
	h.Register("study_math")
	if err := s.SaveDays(ctx, nil, h.Entries()); err != nil {
		t.Fatalf("SaveDays: %v", err)
	}
	if err := s.SaveDays(ctx, nil, []hierarchy.Entry{{Child: "study", Parent: "LEARNING"}}); err != nil {
		t.Fatalf("SaveDays: %v", err)
	}

	got, err := s.ParentMap(ctx)
	if err != nil {
		t.Fatalf("ParentMap: %v", err)
	}
	want := []hierarchy.Entry{
		{Child: "study", Parent: "STUDY"},
		{Child: "study_math", Parent: "study"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParentMap mismatch (-want +got):\n%s", diff)
	}
}
