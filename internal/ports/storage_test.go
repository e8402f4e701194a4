package ports

import (
	"context"
	"testing"
	"time"

	"github.com/xvierd/tomato/internal/domain"
)

// Mock implementations for testing interfaces.

type mockStore struct {
	values map[string][]byte
}

func (m *mockStore) Save(ctx context.Context, key string, value []byte) error {
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *mockStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

type mockSessionLog struct {
	records []domain.SessionRecord
}

func (m *mockSessionLog) Record(ctx context.Context, rec domain.SessionRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *mockSessionLog) Recent(ctx context.Context, since time.Time) ([]domain.SessionRecord, error) {
	var result []domain.SessionRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		if !m.records[i].EndedAt.Before(since) {
			result = append(result, m.records[i])
		}
	}
	return result, nil
}

func (m *mockSessionLog) DailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error) {
	return &domain.DailyStats{Date: date}, nil
}

var (
	_ Store      = (*mockStore)(nil)
	_ SessionLog = (*mockSessionLog)(nil)
)

func TestMockStore(t *testing.T) {
	store := &mockStore{values: make(map[string][]byte)}
	ctx := context.Background()

	t.Run("save and load", func(t *testing.T) {
		if err := store.Save(ctx, "timer.mode", []byte(`"focus"`)); err != nil {
			t.Errorf("Save() error = %v", err)
		}

		got, ok, err := store.Load(ctx, "timer.mode")
		if err != nil || !ok {
			t.Fatalf("Load() = %v, %v", ok, err)
		}
		if string(got) != `"focus"` {
			t.Errorf("Load() = %s, want \"focus\"", got)
		}
	})

	t.Run("load absent key", func(t *testing.T) {
		_, ok, err := store.Load(ctx, "missing")
		if err != nil {
			t.Errorf("Load() error = %v", err)
		}
		if ok {
			t.Error("Load() should report absent key")
		}
	})

	t.Run("delete", func(t *testing.T) {
		_ = store.Delete(ctx, "timer.mode")
		if _, ok, _ := store.Load(ctx, "timer.mode"); ok {
			t.Error("key should be gone after Delete()")
		}
	})
}

func TestMockSessionLog(t *testing.T) {
	log := &mockSessionLog{}
	ctx := context.Background()
	now := time.Now()

	old := domain.NewSessionRecord(domain.ModeFocus, time.Minute, time.Minute, domain.OutcomeCompleted, now.Add(-48*time.Hour))
	fresh := domain.NewSessionRecord(domain.ModeShortBreak, time.Minute, time.Minute, domain.OutcomeCompleted, now)
	_ = log.Record(ctx, old)
	_ = log.Record(ctx, fresh)

	recent, err := log.Recent(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 1 || recent[0].ID != fresh.ID {
		t.Errorf("Recent() = %v, want only the fresh record", recent)
	}
}

func TestPresenterFunc(t *testing.T) {
	var got domain.Snapshot
	var p Presenter = PresenterFunc(func(s domain.Snapshot) { got = s })

	p.Present(domain.Snapshot{Display: "12:34"})
	if got.Display != "12:34" {
		t.Errorf("Present() delivered %q, want 12:34", got.Display)
	}
}
