package workplans

import (
	"context"
	"testing"
	"time"
)

type mapKV struct {
	data map[string]string
}

func newMapKV() *mapKV {
	return &mapKV{data: map[string]string{}}
}

func (m *mapKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapKV) Set(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *mapKV) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestDraftRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewDraftStore(newMapKV())

	form := validForm()
	form.Deadline = time.Date(2026, 10, 1, 12, 30, 0, 0, time.UTC)

	if err := store.Save(ctx, "u1", form); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := store.Load(ctx, "u1")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !got.Deadline.Equal(form.Deadline) {
		t.Errorf("deadline did not round-trip: %v vs %v", got.Deadline, form.Deadline)
	}
	if got.Name != form.Name || len(got.StoreActivities) != 1 {
		t.Errorf("draft fields lost: %+v", got)
	}
}

func TestDraftMissing(t *testing.T) {
	ctx := context.Background()
	store := NewDraftStore(newMapKV())

	_, ok, err := store.Load(ctx, "nobody")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Error("no draft was saved, load must report absence")
	}
}

func TestDraftOverwriteAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewDraftStore(newMapKV())

	first := validForm()
	second := validForm()
	second.Name = "Renamed plan"

	if err := store.Save(ctx, "u1", first); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "u1", second); err != nil {
		t.Fatal(err)
	}

	got, ok, _ := store.Load(ctx, "u1")
	if !ok || got.Name != "Renamed plan" {
		t.Errorf("last write must win, got %q", got.Name)
	}

	if err := store.Clear(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := store.Load(ctx, "u1"); ok {
		t.Error("draft survived clear")
	}

	// clearing again is fine
	if err := store.Clear(ctx, "u1"); err != nil {
		t.Errorf("clearing an absent draft must not fail: %v", err)
	}
}

func TestDraftsAreScopedPerUser(t *testing.T) {
	ctx := context.Background()
	store := NewDraftStore(newMapKV())

	if err := store.Save(ctx, "u1", validForm()); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := store.Load(ctx, "u2"); ok {
		t.Error("drafts must be keyed per user")
	}
}
