package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Kwazyyy/whereto-sub001/internal/repository"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

type BadgeStatsService struct {
	savesRepo   repository.SavesRepositoryI
	visitsRepo  repository.VisitsRepositoryI
	friendsRepo repository.FriendsRepositoryI
	recsRepo    repository.RecommendationsRepositoryI
}

func NewBadgeStatsService(
	savesRepo repository.SavesRepositoryI,
	visitsRepo repository.VisitsRepositoryI,
	friendsRepo repository.FriendsRepositoryI,
	recsRepo repository.RecommendationsRepositoryI,
) *BadgeStatsService {
	if savesRepo == nil || visitsRepo == nil || friendsRepo == nil || recsRepo == nil {
		log.Fatal("on badge stats service provided nil repos")
	}
	return &BadgeStatsService{
		savesRepo:   savesRepo,
		visitsRepo:  visitsRepo,
		friendsRepo: friendsRepo,
		recsRepo:    recsRepo,
	}
}

// ComputeStats reads every counter fresh. No caching, no side effects.
func (bss *BadgeStatsService) ComputeStats(ctx context.Context, uid uuid.UUID) (*entity.StatsSnapshot, error) {
	snapshot := &entity.StatsSnapshot{}
	var err error

	snapshot.Saves, err = bss.savesRepo.CountByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("saves repository error: " + err.Error())
	}
	snapshot.UniqueIntents, err = bss.savesRepo.CountDistinctIntents(ctx, uid)
	if err != nil {
		return nil, errors.New("saves repository error: " + err.Error())
	}
	snapshot.VisitedPlaces, err = bss.visitsRepo.CountByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("visits repository error: " + err.Error())
	}
	snapshot.Neighborhoods, err = bss.visitsRepo.CountDistinctNeighborhoods(ctx, uid)
	if err != nil {
		return nil, errors.New("visits repository error: " + err.Error())
	}
	snapshot.Friends, err = bss.friendsRepo.CountAccepted(ctx, uid)
	if err != nil {
		return nil, errors.New("friends repository error: " + err.Error())
	}
	snapshot.RecommendationsSent, err = bss.recsRepo.CountSentBy(ctx, uid)
	if err != nil {
		return nil, errors.New("recommendations repository error: " + err.Error())
	}

	dates, err := bss.visitsRepo.ActivityDates(ctx, uid)
	if err != nil {
		return nil, errors.New("visits repository error: " + err.Error())
	}
	snapshot.CurrentStreak = currentStreak(dates, time.Now())

	return snapshot, nil
}

// currentStreak counts consecutive active days walking back from the newest
// one. A streak whose last active day is yesterday still counts as alive; a
// gap of more than one day before now means the streak is over.
func currentStreak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}
	today := truncateToDay(now)
	last := truncateToDay(days[0])
	if !last.Equal(today) && !last.Equal(today.AddDate(0, 0, -1)) {
		return 0
	}
	streak := 1
	prev := last
	for _, d := range days[1:] {
		d = truncateToDay(d)
		if d.Equal(prev) {
			continue
		}
		if !d.Equal(prev.AddDate(0, 0, -1)) {
			break
		}
		streak++
		prev = d
	}
	return streak
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
