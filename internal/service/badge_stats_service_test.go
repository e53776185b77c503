package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Kwazyyy/whereto-sub001/internal/service"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

type statsSavesRepoMock struct {
	saves   int
	intents int
	fail    bool
}

func (m *statsSavesRepoMock) Create(ctx context.Context, save *entity.SavedPlace) error {
	return nil
}

func (m *statsSavesRepoMock) Exists(ctx context.Context, uid uuid.UUID, placeID string) (bool, error) {
	return false, nil
}

func (m *statsSavesRepoMock) DeleteByPlace(ctx context.Context, uid uuid.UUID, placeID string) error {
	return nil
}

func (m *statsSavesRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.SavedPlace, error) {
	return []*entity.SavedPlace{}, nil
}

func (m *statsSavesRepoMock) CountByUserID(ctx context.Context, uid uuid.UUID) (int, error) {
	if m.fail {
		return 0, errors.New("db error")
	}
	return m.saves, nil
}

func (m *statsSavesRepoMock) CountDistinctIntents(ctx context.Context, uid uuid.UUID) (int, error) {
	return m.intents, nil
}

type statsVisitsRepoMock struct {
	visits        int
	neighborhoods int
	activityDates []time.Time
}

func (m *statsVisitsRepoMock) Create(ctx context.Context, visit *entity.PlaceVisit) error {
	return nil
}

func (m *statsVisitsRepoMock) CountByUserID(ctx context.Context, uid uuid.UUID) (int, error) {
	return m.visits, nil
}

func (m *statsVisitsRepoMock) CountDistinctNeighborhoods(ctx context.Context, uid uuid.UUID) (int, error) {
	return m.neighborhoods, nil
}

func (m *statsVisitsRepoMock) ActivityDates(ctx context.Context, uid uuid.UUID) ([]time.Time, error) {
	return m.activityDates, nil
}

type statsFriendsRepoMock struct {
	friends int
}

func (m *statsFriendsRepoMock) Create(ctx context.Context, requesterID, addresseeID uuid.UUID) error {
	return nil
}

func (m *statsFriendsRepoMock) Accept(ctx context.Context, requesterID, addresseeID uuid.UUID) error {
	return nil
}

func (m *statsFriendsRepoMock) AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return false, nil
}

func (m *statsFriendsRepoMock) CountAccepted(ctx context.Context, uid uuid.UUID) (int, error) {
	return m.friends, nil
}

type statsRecsRepoMock struct {
	sent int
}

func (m *statsRecsRepoMock) Create(ctx context.Context, rec *entity.Recommendation) error {
	return nil
}

func (m *statsRecsRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Recommendation, error) {
	return nil, nil
}

func (m *statsRecsRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (m *statsRecsRepoMock) CountSentBy(ctx context.Context, uid uuid.UUID) (int, error) {
	return m.sent, nil
}

func (m *statsRecsRepoMock) CountUnseenFor(ctx context.Context, uid uuid.UUID) (int, error) {
	return 0, nil
}

// day returns midnight UTC n days before now.
func day(n int) time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -n)
}

func TestComputeStats(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	t.Run("all counters filled", func(t *testing.T) {
		ss := service.NewBadgeStatsService(
			&statsSavesRepoMock{saves: 7, intents: 3},
			&statsVisitsRepoMock{visits: 4, neighborhoods: 2, activityDates: []time.Time{day(0), day(1)}},
			&statsFriendsRepoMock{friends: 5},
			&statsRecsRepoMock{sent: 6},
		)
		snapshot, err := ss.ComputeStats(ctx, uid)
		assert.NoError(t, err)
		assert.Equal(t, 7, snapshot.Saves)
		assert.Equal(t, 3, snapshot.UniqueIntents)
		assert.Equal(t, 4, snapshot.VisitedPlaces)
		assert.Equal(t, 2, snapshot.Neighborhoods)
		assert.Equal(t, 5, snapshot.Friends)
		assert.Equal(t, 6, snapshot.RecommendationsSent)
		assert.Equal(t, 2, snapshot.CurrentStreak)
	})
	t.Run("fresh user yields all zeroes", func(t *testing.T) {
		ss := service.NewBadgeStatsService(
			&statsSavesRepoMock{},
			&statsVisitsRepoMock{},
			&statsFriendsRepoMock{},
			&statsRecsRepoMock{},
		)
		snapshot, err := ss.ComputeStats(ctx, uid)
		assert.NoError(t, err)
		assert.Equal(t, entity.StatsSnapshot{}, *snapshot)
	})
	t.Run("repo error propagates", func(t *testing.T) {
		ss := service.NewBadgeStatsService(
			&statsSavesRepoMock{fail: true},
			&statsVisitsRepoMock{},
			&statsFriendsRepoMock{},
			&statsRecsRepoMock{},
		)
		_, err := ss.ComputeStats(ctx, uid)
		assert.Error(t, err)
	})
}

func TestCurrentStreak(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	streakOf := func(dates []time.Time) int {
		ss := service.NewBadgeStatsService(
			&statsSavesRepoMock{},
			&statsVisitsRepoMock{activityDates: dates},
			&statsFriendsRepoMock{},
			&statsRecsRepoMock{},
		)
		snapshot, err := ss.ComputeStats(ctx, uid)
		if err != nil {
			t.Fatal(err)
		}
		return snapshot.CurrentStreak
	}
	t.Run("no activity", func(t *testing.T) {
		assert.Equal(t, 0, streakOf(nil))
	})
	t.Run("active today only", func(t *testing.T) {
		assert.Equal(t, 1, streakOf([]time.Time{day(0)}))
	})
	t.Run("streak anchored on yesterday still alive", func(t *testing.T) {
		assert.Equal(t, 3, streakOf([]time.Time{day(1), day(2), day(3)}))
	})
	t.Run("last activity two days ago is over", func(t *testing.T) {
		assert.Equal(t, 0, streakOf([]time.Time{day(2), day(3)}))
	})
	t.Run("gap in the middle cuts the streak", func(t *testing.T) {
		assert.Equal(t, 2, streakOf([]time.Time{day(0), day(1), day(3), day(4)}))
	})
	t.Run("duplicate days don't inflate", func(t *testing.T) {
		assert.Equal(t, 2, streakOf([]time.Time{day(0), day(0), day(1)}))
	})
	t.Run("full week", func(t *testing.T) {
		assert.Equal(t, 7, streakOf([]time.Time{
			day(0), day(1), day(2), day(3), day(4), day(5), day(6),
		}))
	})
}
