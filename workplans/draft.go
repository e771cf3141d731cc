package workplans

import (
	"context"
	"encoding/json"
	"fmt"

	"fieldops/models"
	"fieldops/rdx"
)

// KV is the minimal durable key-value surface the draft snapshot needs;
// Redis in production, a map in tests.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// DraftStore persists one wizard draft per user: read once when the wizard
// mounts, overwritten wholesale on every change, deleted on submit or
// explicit reset. Single writer by construction (one open wizard); last
// write wins.
type DraftStore struct {
	kv KV
}

func NewDraftStore(kv KV) *DraftStore {
	return &DraftStore{kv: kv}
}

func draftKey(userID string) string {
	return "workplan:draft:" + userID
}

// Load returns the stored draft, if any. The deadline round-trips through
// its RFC3339 JSON form.
func (s *DraftStore) Load(ctx context.Context, userID string) (models.WorkPlanFormData, bool, error) {
	var form models.WorkPlanFormData

	raw, ok, err := s.kv.Get(ctx, draftKey(userID))
	if err != nil {
		return form, false, fmt.Errorf("load draft: %w", err)
	}
	if !ok {
		return form, false, nil
	}

	if err := json.Unmarshal([]byte(raw), &form); err != nil {
		return form, false, fmt.Errorf("decode draft: %w", err)
	}
	return form, true, nil
}

// Save overwrites the user's draft with the full form state.
func (s *DraftStore) Save(ctx context.Context, userID string, form models.WorkPlanFormData) error {
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.kv.Set(ctx, draftKey(userID), string(data)); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Clear drops the user's draft. Clearing an absent draft is not an error.
func (s *DraftStore) Clear(ctx context.Context, userID string) error {
	if err := s.kv.Del(ctx, draftKey(userID)); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

// RedisKV backs the draft store with the shared Redis connection.
type RedisKV struct{}

func (RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := rdx.Conn.Get(ctx, key).Result()
	if rdx.IsNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (RedisKV) Set(ctx context.Context, key, value string) error {
	return rdx.Conn.Set(ctx, key, value, 0).Err()
}

func (RedisKV) Del(ctx context.Context, key string) error {
	return rdx.Conn.Del(ctx, key).Err()
}
