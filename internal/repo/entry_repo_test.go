package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/quantifyme-backend/internal/domain"
)

func TestCreateEntry_DuplicateLeavesOriginal(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, allModels()...)

	orig := newEntry("u1", "2025-03-01", 60)
	if err := CreateEntry(ctx, db, orig); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if orig.ID == "" || orig.Version != 1 || orig.CreatedAt.IsZero() {
		t.Fatalf("entry not prepared: %+v", orig)
	}

	dup := newEntry("u1", "2025-03-01", 10)
	if err := CreateEntry(ctx, db, dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}

	got, err := GetCurrentEntry(ctx, db, "u1", "2025-03-01")
	if err != nil {
		t.Fatalf("GetCurrentEntry: %v", err)
	}
	if got.ID != orig.ID || got.Composite != 60 {
		t.Fatalf("original entry changed: %+v", got)
	}
}

func TestCreateEntry_DuplicateAfterCorrection(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, allModels()...)
	_ = CreateEntry(ctx, db, newEntry("u1", "2025-03-01", 60))
	_ = AppendVersion(ctx, db, newEntry("u1", "2025-03-01", 65))

	if err := CreateEntry(ctx, db, newEntry("u1", "2025-03-01", 10)); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}
}

func TestCreateEntry_Error_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	err := CreateEntry(context.Background(), db, newEntry("u1", "2025-03-01", 50))
	if err == nil || errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected plain DB error, got %v", err)
	}
}

func TestAppendVersion_AndVersions(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, allModels()...)

	if err := AppendVersion(ctx, db, newEntry("u1", "2025-03-01", 70)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("correcting an unknown day: want ErrNotFound, got %v", err)
	}

	v1 := newEntry("u1", "2025-03-01", 60)
	_ = CreateEntry(ctx, db, v1)
	v2 := newEntry("u1", "2025-03-01", 70)
	if err := AppendVersion(ctx, db, v2); err != nil {
		t.Fatalf("AppendVersion: %v", err)
	}
	v3 := newEntry("u1", "2025-03-01", 80)
	if err := AppendVersion(ctx, db, v3); err != nil {
		t.Fatalf("AppendVersion: %v", err)
	}
	if v2.Version != 2 || v3.Version != 3 {
		t.Fatalf("versions = %d, %d", v2.Version, v3.Version)
	}

	cur, err := GetCurrentEntry(ctx, db, "u1", "2025-03-01")
	if err != nil || cur.Version != 3 || cur.Composite != 80 {
		t.Fatalf("current = %+v err=%v", cur, err)
	}

	all, err := ListVersions(ctx, db, "u1", "2025-03-01")
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if len(all) != 3 || all[0].Composite != 60 || all[2].Version != 3 {
		t.Fatalf("versions = %+v", all)
	}

	if _, err := ListVersions(ctx, db, "u1", "2025-01-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := GetCurrentEntry(ctx, db, "u2", "2025-03-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other user must not see entry, got %v", err)
	}
}

func TestListRange_CurrentVersionsOrderedAndBounded(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, allModels()...)

	for _, d := range []string{"2025-03-01", "2025-03-03", "2025-03-05", "2025-03-09"} {
		if err := CreateEntry(ctx, db, newEntry("u1", d, 50)); err != nil {
			t.Fatalf("seed %s: %v", d, err)
		}
	}
	_ = CreateEntry(ctx, db, newEntry("u2", "2025-03-03", 10))
	_ = AppendVersion(ctx, db, newEntry("u1", "2025-03-03", 90))

	asc, err := ListRange(ctx, db, "u1", "2025-03-02", "2025-03-05", false)
	if err != nil {
		t.Fatalf("ListRange: %v", err)
	}
	if len(asc) != 2 || asc[0].Day != "2025-03-03" || asc[1].Day != "2025-03-05" {
		t.Fatalf("asc = %+v", asc)
	}
	if asc[0].Composite != 90 || asc[0].Version != 2 {
		t.Fatalf("range must carry the current version, got %+v", asc[0])
	}

	desc, _ := ListRange(ctx, db, "u1", "", "", true)
	if len(desc) != 4 || desc[0].Day != "2025-03-09" || desc[3].Day != "2025-03-01" {
		t.Fatalf("desc = %+v", desc)
	}
}

func TestListLatest(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, allModels()...)
	for _, d := range []string{"2025-03-01", "2025-03-02", "2025-03-03"} {
		_ = CreateEntry(ctx, db, newEntry("u1", d, 50))
	}
	_ = AppendVersion(ctx, db, newEntry("u1", "2025-03-03", 55))

	got, err := ListLatest(ctx, db, "u1", 2)
	if err != nil {
		t.Fatalf("ListLatest: %v", err)
	}
	if len(got) != 2 || got[0].Day != "2025-03-03" || got[0].Version != 2 || got[1].Day != "2025-03-02" {
		t.Fatalf("latest = %+v", got)
	}
}

func TestEntryExists(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, allModels()...)
	_ = CreateEntry(ctx, db, newEntry("u1", "2025-03-01", 50))

	if ok, err := EntryExists(ctx, db, "u1", "2025-03-01"); err != nil || !ok {
		t.Fatalf("expected entry to exist: ok=%v err=%v", ok, err)
	}
	if ok, _ := EntryExists(ctx, db, "u1", "2025-03-02"); ok {
		t.Fatalf("unexpected entry")
	}
}

func TestDeleteDay_RemovesVersionsAndInterpretations(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, allModels()...)

	v1 := newEntry("u1", "2025-03-01", 50)
	_ = CreateEntry(ctx, db, v1)
	_ = AppendVersion(ctx, db, newEntry("u1", "2025-03-01", 60))
	_ = CreateEntry(ctx, db, newEntry("u1", "2025-03-02", 70))
	if err := CreateInterpretation(ctx, db, &domain.Interpretation{EntryID: v1.ID, UserID: "u1", Day: "2025-03-01", Provider: "stub", Locale: "en", Text: "x"}); err != nil {
		t.Fatalf("CreateInterpretation: %v", err)
	}

	n, err := DeleteDay(ctx, db, "u1", "2025-03-01")
	if err != nil || n != 2 {
		t.Fatalf("DeleteDay = %d, %v", n, err)
	}
	var cnt int64
	db.Model(&domain.Interpretation{}).Where("user_id = ? AND day = ?", "u1", "2025-03-01").Count(&cnt)
	if cnt != 0 {
		t.Fatalf("interpretations left: %d", cnt)
	}
	if ok, _ := EntryExists(ctx, db, "u1", "2025-03-02"); !ok {
		t.Fatalf("other days must survive")
	}
	if _, err := DeleteDay(ctx, db, "u1", "2025-03-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}

	// the day can be recorded again after deletion
	if err := CreateEntry(ctx, db, newEntry("u1", "2025-03-01", 40)); err != nil {
		t.Fatalf("re-create after delete: %v", err)
	}
}

func TestInterpretation_Latest(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, allModels()...)
	e := newEntry("u1", "2025-03-01", 50)
	_ = CreateEntry(ctx, db, e)

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	_ = CreateInterpretation(ctx, db, &domain.Interpretation{EntryID: e.ID, UserID: "u1", Day: e.Day, Provider: "stub", Locale: "en", Text: "old", CreatedAt: base})
	_ = CreateInterpretation(ctx, db, &domain.Interpretation{EntryID: e.ID, UserID: "u1", Day: e.Day, Provider: "openai", Locale: "en", Text: "new", CreatedAt: base.Add(time.Hour)})
	_ = CreateInterpretation(ctx, db, &domain.Interpretation{EntryID: e.ID, UserID: "u1", Day: e.Day, Provider: "stub", Locale: "fr", Text: "fr", CreatedAt: base.Add(2 * time.Hour)})

	got, err := LatestInterpretation(ctx, db, e.ID, "en")
	if err != nil || got.Text != "new" {
		t.Fatalf("latest = %+v err=%v", got, err)
	}
	if _, err := LatestInterpretation(ctx, db, e.ID, "de"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetEntryByID_ScopedToUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, allModels()...)

	e := newEntry("u1", "2025-03-01", 42)
	if err := CreateEntry(ctx, db, e); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	got, err := GetEntryByID(ctx, db, "u1", e.ID)
	if err != nil || got.Composite != 42 {
		t.Fatalf("GetEntryByID = %+v, %v", got, err)
	}
	if _, err := GetEntryByID(ctx, db, "u2", e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other user must not see the row, got %v", err)
	}
}
