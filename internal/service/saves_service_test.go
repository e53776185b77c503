package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/Kwazyyy/whereto-sub001/internal/anonstore"
	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/internal/service"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

type savesRepoMock struct {
	rows []*entity.SavedPlace
}

func (m *savesRepoMock) Create(ctx context.Context, save *entity.SavedPlace) error {
	for _, row := range m.rows {
		if row.UserID == save.UserID && row.Place.ID == save.Place.ID && row.Intent == save.Intent {
			return errorvalues.ErrPlaceAlreadySaved
		}
	}
	stored := *save
	stored.ID = uuid.New()
	stored.SavedAt = time.Now()
	m.rows = append(m.rows, &stored)
	return nil
}

func (m *savesRepoMock) Exists(ctx context.Context, uid uuid.UUID, placeID string) (bool, error) {
	for _, row := range m.rows {
		if row.UserID == uid && row.Place.ID == placeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *savesRepoMock) DeleteByPlace(ctx context.Context, uid uuid.UUID, placeID string) error {
	kept := m.rows[:0]
	removed := false
	for _, row := range m.rows {
		if row.UserID == uid && row.Place.ID == placeID {
			removed = true
			continue
		}
		kept = append(kept, row)
	}
	m.rows = kept
	if !removed {
		return errorvalues.ErrSaveNotFound
	}
	return nil
}

func (m *savesRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.SavedPlace, error) {
	saves := make([]*entity.SavedPlace, 0)
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == uid {
			saves = append(saves, m.rows[i])
		}
	}
	return saves, nil
}

func (m *savesRepoMock) CountByUserID(ctx context.Context, uid uuid.UUID) (int, error) {
	count := 0
	for _, row := range m.rows {
		if row.UserID == uid {
			count++
		}
	}
	return count, nil
}

func (m *savesRepoMock) CountDistinctIntents(ctx context.Context, uid uuid.UUID) (int, error) {
	intents := make(map[string]struct{})
	for _, row := range m.rows {
		if row.UserID == uid {
			intents[row.Intent] = struct{}{}
		}
	}
	return len(intents), nil
}

type visitsRepoMock struct {
	visits []*entity.PlaceVisit
	fail   bool
}

func (m *visitsRepoMock) Create(ctx context.Context, visit *entity.PlaceVisit) error {
	if m.fail {
		return errors.New("db error")
	}
	m.visits = append(m.visits, visit)
	return nil
}

func (m *visitsRepoMock) CountByUserID(ctx context.Context, uid uuid.UUID) (int, error) {
	return len(m.visits), nil
}

func (m *visitsRepoMock) CountDistinctNeighborhoods(ctx context.Context, uid uuid.UUID) (int, error) {
	return 0, nil
}

func (m *visitsRepoMock) ActivityDates(ctx context.Context, uid uuid.UUID) ([]time.Time, error) {
	return nil, nil
}

type savesRedisMock struct {
	data map[string]string
}

func (m *savesRedisMock) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *savesRedisMock) Get(ctx context.Context, key string) *redis.StringCmd {
	raw, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(raw, nil)
}

func (m *savesRedisMock) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (m *savesRedisMock) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func newSavesService() (*service.SavesService, *savesRepoMock, *visitsRepoMock) {
	savesRepo := &savesRepoMock{}
	visitsRepo := &visitsRepoMock{}
	anon := anonstore.NewWithConn(&savesRedisMock{data: make(map[string]string)})
	return service.NewSavesService(savesRepo, visitsRepo, anon), savesRepo, visitsRepo
}

func TestUserSaver(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	ss, repo, _ := newSavesService()
	saver := ss.ForUser(uid)
	place := entity.Place{ID: "place_a", Name: "A"}
	t.Run("saved with default action", func(t *testing.T) {
		err := saver.Save(ctx, place, "coffee", "")
		assert.NoError(t, err)
		assert.Len(t, repo.rows, 1)
		assert.Equal(t, entity.ActionSave, repo.rows[0].Action)
	})
	t.Run("saving twice is a no-op", func(t *testing.T) {
		err := saver.Save(ctx, place, "coffee", entity.ActionSave)
		assert.NoError(t, err)
		assert.Len(t, repo.rows, 1)
	})
	t.Run("same place under another intent is a new row", func(t *testing.T) {
		err := saver.Save(ctx, place, "dinner", entity.ActionGoNow)
		assert.NoError(t, err)
		assert.Len(t, repo.rows, 2)
	})
	t.Run("empty place id is rejected", func(t *testing.T) {
		err := saver.Save(ctx, entity.Place{}, "coffee", entity.ActionSave)
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("invalid intent is rejected", func(t *testing.T) {
		err := saver.Save(ctx, place, "NOT AN INTENT", entity.ActionSave)
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("is saved", func(t *testing.T) {
		saved, err := saver.IsSaved(ctx, "place_a")
		assert.NoError(t, err)
		assert.True(t, saved)
	})
	t.Run("remove clears every intent", func(t *testing.T) {
		err := saver.Remove(ctx, "place_a")
		assert.NoError(t, err)
		assert.Empty(t, repo.rows)
	})
	t.Run("removing unexist save", func(t *testing.T) {
		err := saver.Remove(ctx, "place_a")
		assert.ErrorIs(t, err, errorvalues.ErrSaveNotFound)
	})
}

func TestAnonSaver(t *testing.T) {
	ctx := context.Background()
	ss, repo, _ := newSavesService()
	saver := ss.ForClient("client_a")
	place := entity.Place{ID: "place_a", Name: "A"}
	t.Run("saved without touching the database", func(t *testing.T) {
		err := saver.Save(ctx, place, "coffee", entity.ActionSave)
		assert.NoError(t, err)
		assert.Empty(t, repo.rows)
		saved, err := saver.IsSaved(ctx, "place_a")
		assert.NoError(t, err)
		assert.True(t, saved)
	})
	t.Run("intent change on a saved place is a no-op", func(t *testing.T) {
		err := saver.Save(ctx, place, "dinner", entity.ActionSave)
		assert.NoError(t, err)
		saves, err := saver.ListAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, saves, 1)
		assert.Equal(t, "coffee", saves[0].Intent)
	})
	t.Run("other clients see nothing", func(t *testing.T) {
		other := ss.ForClient("client_b")
		saved, err := other.IsSaved(ctx, "place_a")
		assert.NoError(t, err)
		assert.False(t, saved)
	})
	t.Run("removed", func(t *testing.T) {
		err := saver.Remove(ctx, "place_a")
		assert.NoError(t, err)
		err = saver.Remove(ctx, "place_a")
		assert.ErrorIs(t, err, errorvalues.ErrSaveNotFound)
	})
}

func TestRecordVisit(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	ss, _, visits := newSavesService()
	t.Run("recorded", func(t *testing.T) {
		err := ss.RecordVisit(ctx, uid, "place_a", "Williamsburg")
		assert.NoError(t, err)
		assert.Len(t, visits.visits, 1)
	})
	t.Run("empty place id is rejected", func(t *testing.T) {
		err := ss.RecordVisit(ctx, uid, "", "Williamsburg")
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("repo error propagates", func(t *testing.T) {
		visits.fail = true
		err := ss.RecordVisit(ctx, uid, "place_a", "")
		assert.Error(t, err)
	})
}
