package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/internal/repository"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

type BadgesService struct {
	repo  repository.BadgesRepositoryI
	stats BadgeStatsServiceI
}

func NewBadgesService(badgesRepo repository.BadgesRepositoryI, statsService BadgeStatsServiceI) *BadgesService {
	if badgesRepo == nil || statsService == nil {
		log.Fatal("on badges service provided nil deps")
	}
	return &BadgesService{
		repo:  badgesRepo,
		stats: statsService,
	}
}

// CheckAndAwardBadges awards every definition the user newly qualifies for.
// The unique index on (user_id, badge_type) is the only concurrency guard:
// losing the race to another request is not an error, the badge just isn't
// ours to report. Any other persistence failure aborts the whole call.
func (bs *BadgesService) CheckAndAwardBadges(ctx context.Context, uid uuid.UUID) ([]entity.BadgeDefinition, error) {
	earned, err := bs.repo.GetEarnedTypes(ctx, uid)
	if err != nil {
		return nil, errors.New("badges repository error: " + err.Error())
	}
	snapshot, err := bs.stats.ComputeStats(ctx, uid)
	if err != nil {
		return nil, errors.New("computing stats error: " + err.Error())
	}
	newBadges := make([]entity.BadgeDefinition, 0)
	for _, def := range entity.BadgeDefinitions() {
		if _, ok := earned[def.Type]; ok {
			continue
		}
		if snapshot.Metric(def.Metric) < def.Threshold {
			continue
		}
		err = bs.repo.CreateEarned(ctx, uid, def.Type)
		if errors.Is(err, errorvalues.ErrBadgeAlreadyEarned) {
			continue
		}
		if err != nil {
			return nil, errors.New("badges repository error: " + err.Error())
		}
		newBadges = append(newBadges, def)
	}
	return newBadges, nil
}

func (bs *BadgesService) GetBadgeOverview(ctx context.Context, uid uuid.UUID) (*BadgeOverview, error) {
	earnedBadges, err := bs.repo.GetEarned(ctx, uid)
	if err != nil {
		return nil, errors.New("badges repository error: " + err.Error())
	}
	snapshot, err := bs.stats.ComputeStats(ctx, uid)
	if err != nil {
		return nil, errors.New("computing stats error: " + err.Error())
	}
	earnedTypes := make(map[string]struct{}, len(earnedBadges))
	for _, b := range earnedBadges {
		earnedTypes[b.BadgeType] = struct{}{}
	}
	defs := entity.BadgeDefinitions()
	progress := make([]BadgeProgress, 0, len(defs))
	for _, def := range defs {
		_, isEarned := earnedTypes[def.Type]
		progress = append(progress, BadgeProgress{
			Definition: def,
			Current:    snapshot.Metric(def.Metric),
			Earned:     isEarned,
		})
	}
	return &BadgeOverview{
		Earned:      earnedBadges,
		Definitions: defs,
		Progress:    progress,
	}, nil
}
