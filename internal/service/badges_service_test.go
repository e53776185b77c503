package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/internal/service"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

type badgesRepoMock struct {
	earned map[string]struct{}
	// raceTypes contains badge types whose insert loses a concurrent race
	raceTypes map[string]struct{}
	failOn    string
	created   []string
}

func (m *badgesRepoMock) CreateEarned(ctx context.Context, uid uuid.UUID, badgeType string) error {
	if badgeType == m.failOn {
		return errors.New("db error")
	}
	if _, ok := m.raceTypes[badgeType]; ok {
		return errorvalues.ErrBadgeAlreadyEarned
	}
	m.created = append(m.created, badgeType)
	return nil
}

func (m *badgesRepoMock) GetEarnedTypes(ctx context.Context, uid uuid.UUID) (map[string]struct{}, error) {
	if m.earned == nil {
		return map[string]struct{}{}, nil
	}
	return m.earned, nil
}

func (m *badgesRepoMock) GetEarned(ctx context.Context, uid uuid.UUID) ([]*entity.EarnedBadge, error) {
	earned := make([]*entity.EarnedBadge, 0, len(m.earned))
	for badgeType := range m.earned {
		earned = append(earned, &entity.EarnedBadge{BadgeType: badgeType})
	}
	return earned, nil
}

type statsServiceMock struct {
	snapshot entity.StatsSnapshot
	fail     bool
}

func (m *statsServiceMock) ComputeStats(ctx context.Context, uid uuid.UUID) (*entity.StatsSnapshot, error) {
	if m.fail {
		return nil, errors.New("stats error")
	}
	snapshot := m.snapshot
	return &snapshot, nil
}

func badgeTypes(defs []entity.BadgeDefinition) []string {
	types := make([]string, 0, len(defs))
	for _, def := range defs {
		types = append(types, def.Type)
	}
	return types
}

func TestCheckAndAwardBadges(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	t.Run("awards every newly qualified badge", func(t *testing.T) {
		repo := &badgesRepoMock{}
		bs := service.NewBadgesService(repo, &statsServiceMock{
			snapshot: entity.StatsSnapshot{Saves: 5, CurrentStreak: 2},
		})
		newBadges, err := bs.CheckAndAwardBadges(ctx, uid)
		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"first_save", "collector"}, badgeTypes(newBadges))
		assert.ElementsMatch(t, []string{"first_save", "collector"}, repo.created)
	})
	t.Run("second call without new activity awards nothing", func(t *testing.T) {
		repo := &badgesRepoMock{
			earned: map[string]struct{}{
				"first_save": {},
				"collector":  {},
			},
		}
		bs := service.NewBadgesService(repo, &statsServiceMock{
			snapshot: entity.StatsSnapshot{Saves: 5, CurrentStreak: 2},
		})
		newBadges, err := bs.CheckAndAwardBadges(ctx, uid)
		assert.NoError(t, err)
		assert.Empty(t, newBadges)
		assert.Empty(t, repo.created)
	})
	t.Run("below threshold awards nothing", func(t *testing.T) {
		repo := &badgesRepoMock{}
		bs := service.NewBadgesService(repo, &statsServiceMock{})
		newBadges, err := bs.CheckAndAwardBadges(ctx, uid)
		assert.NoError(t, err)
		assert.Empty(t, newBadges)
	})
	t.Run("losing the insert race is not an error", func(t *testing.T) {
		repo := &badgesRepoMock{
			raceTypes: map[string]struct{}{"first_save": {}},
		}
		bs := service.NewBadgesService(repo, &statsServiceMock{
			snapshot: entity.StatsSnapshot{Saves: 5},
		})
		newBadges, err := bs.CheckAndAwardBadges(ctx, uid)
		assert.NoError(t, err)
		// Only the badge we durably inserted ourselves is reported
		assert.ElementsMatch(t, []string{"collector"}, badgeTypes(newBadges))
	})
	t.Run("persistence error aborts the call", func(t *testing.T) {
		repo := &badgesRepoMock{failOn: "collector"}
		bs := service.NewBadgesService(repo, &statsServiceMock{
			snapshot: entity.StatsSnapshot{Saves: 25},
		})
		_, err := bs.CheckAndAwardBadges(ctx, uid)
		assert.Error(t, err)
	})
	t.Run("stats error aborts the call", func(t *testing.T) {
		bs := service.NewBadgesService(&badgesRepoMock{}, &statsServiceMock{fail: true})
		_, err := bs.CheckAndAwardBadges(ctx, uid)
		assert.Error(t, err)
	})
	t.Run("streak badges follow the streak metric", func(t *testing.T) {
		repo := &badgesRepoMock{}
		bs := service.NewBadgesService(repo, &statsServiceMock{
			snapshot: entity.StatsSnapshot{CurrentStreak: 7},
		})
		newBadges, err := bs.CheckAndAwardBadges(ctx, uid)
		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"streak_3", "streak_7"}, badgeTypes(newBadges))
	})
}

func TestGetBadgeOverview(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	repo := &badgesRepoMock{
		earned: map[string]struct{}{"first_save": {}},
	}
	bs := service.NewBadgesService(repo, &statsServiceMock{
		snapshot: entity.StatsSnapshot{Saves: 3},
	})
	overview, err := bs.GetBadgeOverview(ctx, uid)
	assert.NoError(t, err)
	assert.Len(t, overview.Earned, 1)
	assert.Len(t, overview.Definitions, len(entity.BadgeDefinitions()))
	assert.Len(t, overview.Progress, len(overview.Definitions))
	for _, p := range overview.Progress {
		switch p.Definition.Type {
		case "first_save":
			assert.True(t, p.Earned)
			assert.Equal(t, 3, p.Current)
		case "collector":
			assert.False(t, p.Earned)
			assert.Equal(t, 3, p.Current)
		}
	}
}
