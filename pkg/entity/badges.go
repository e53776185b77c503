package entity

import (
	"time"

	"github.com/google/uuid"
)

type BadgeMetric string

const (
	MetricVisits          BadgeMetric = "visits"
	MetricNeighborhoods   BadgeMetric = "neighborhoods"
	MetricFriends         BadgeMetric = "friends"
	MetricSaves           BadgeMetric = "saves"
	MetricRecommendations BadgeMetric = "recommendations"
	MetricStreak          BadgeMetric = "streak"
	MetricUniqueIntents   BadgeMetric = "unique_intents"
)

type BadgeDefinition struct {
	Type        string      `json:"type"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Metric      BadgeMetric `json:"metric"`
	Threshold   int         `json:"threshold"`
}

type EarnedBadge struct {
	UserID    uuid.UUID `json:"uid"`
	BadgeType string    `json:"badge_type"`
	EarnedAt  time.Time `json:"earned_at"`
}

// StatsSnapshot is the per-request view of a user's activity counters. It is
// never persisted.
type StatsSnapshot struct {
	VisitedPlaces       int `json:"visited_places"`
	Neighborhoods       int `json:"neighborhoods"`
	Friends             int `json:"friends"`
	Saves               int `json:"saves"`
	RecommendationsSent int `json:"recommendations_sent"`
	CurrentStreak       int `json:"current_streak"`
	UniqueIntents       int `json:"unique_intents"`
}

func (s *StatsSnapshot) Metric(m BadgeMetric) int {
	switch m {
	case MetricVisits:
		return s.VisitedPlaces
	case MetricNeighborhoods:
		return s.Neighborhoods
	case MetricFriends:
		return s.Friends
	case MetricSaves:
		return s.Saves
	case MetricRecommendations:
		return s.RecommendationsSent
	case MetricStreak:
		return s.CurrentStreak
	case MetricUniqueIntents:
		return s.UniqueIntents
	}
	return 0
}

// badgeDefinitions is the static award table. Loaded once, read-only for the
// process lifetime.
var badgeDefinitions = []BadgeDefinition{
	{Type: "first_save", Name: "First Find", Description: "Save your first place", Icon: "bookmark", Metric: MetricSaves, Threshold: 1},
	{Type: "collector", Name: "Collector", Description: "Save 5 places", Icon: "bookmarks", Metric: MetricSaves, Threshold: 5},
	{Type: "curator", Name: "Curator", Description: "Save 25 places", Icon: "archive", Metric: MetricSaves, Threshold: 25},
	{Type: "first_visit", Name: "Out The Door", Description: "Check in at your first place", Icon: "door", Metric: MetricVisits, Threshold: 1},
	{Type: "regular", Name: "Regular", Description: "Check in at 10 places", Icon: "coffee", Metric: MetricVisits, Threshold: 10},
	{Type: "explorer", Name: "Explorer", Description: "Visit places in 5 neighborhoods", Icon: "compass", Metric: MetricNeighborhoods, Threshold: 5},
	{Type: "social", Name: "Social Butterfly", Description: "Make 3 friends", Icon: "butterfly", Metric: MetricFriends, Threshold: 3},
	{Type: "connector", Name: "Connector", Description: "Make 10 friends", Icon: "link", Metric: MetricFriends, Threshold: 10},
	{Type: "tastemaker", Name: "Tastemaker", Description: "Send 5 recommendations", Icon: "megaphone", Metric: MetricRecommendations, Threshold: 5},
	{Type: "streak_3", Name: "Warming Up", Description: "Stay active 3 days in a row", Icon: "flame", Metric: MetricStreak, Threshold: 3},
	{Type: "streak_7", Name: "On Fire", Description: "Stay active 7 days in a row", Icon: "fire", Metric: MetricStreak, Threshold: 7},
	{Type: "mood_mixer", Name: "Mood Mixer", Description: "Save places under 3 different intents", Icon: "shuffle", Metric: MetricUniqueIntents, Threshold: 3},
}

// BadgeDefinitions returns a copy so callers can't mutate the table.
func BadgeDefinitions() []BadgeDefinition {
	defs := make([]BadgeDefinition, len(badgeDefinitions))
	copy(defs, badgeDefinitions)
	return defs
}
