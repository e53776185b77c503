// Package anonstore keeps per-client state for visitors without an account:
// the saved-places list, per-intent skip sets and the preferences blob. Each
// anonymous client gets its own redis namespace; nothing here is ever shared
// between clients or merged into account data.
package anonstore

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/pkg/cleanup"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

// namespaceTTL bounds how long an abandoned anonymous namespace lingers.
// Refreshed on every write.
const namespaceTTL = 30 * 24 * time.Hour

type RedisConnection interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type Store struct {
	conn RedisConnection
}

func New(addr, password string, db int) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("error while pinging redis for anonstore: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing redis client",
		F:    client.Close,
	})
	return &Store{
		conn: client,
	}
}

func NewWithConn(conn RedisConnection) *Store {
	if err := conn.Ping(context.Background()).Err(); err != nil {
		log.Fatal("error while pinging connection for anonstore: " + err.Error())
	}
	return &Store{
		conn: conn,
	}
}

func savesKey(clientID string) string {
	return "whereto:" + clientID + ":saved_places"
}

func skipsKey(clientID string) string {
	return "whereto:" + clientID + ":skipped"
}

func prefsKey(clientID string) string {
	return "whereto:" + clientID + ":prefs"
}

// SavePlace prepends a new entry unless the place is already on the list.
// Dedup is by place id only, whatever the intent.
func (s *Store) SavePlace(ctx context.Context, clientID string, place entity.Place, intent string) error {
	saves, err := s.loadSaves(ctx, clientID)
	if err != nil {
		return err
	}
	for _, existing := range saves {
		if existing.Place.ID == place.ID {
			return nil
		}
	}
	entry := &entity.SavedPlace{
		Place:   place,
		Intent:  intent,
		SavedAt: time.Now(),
	}
	saves = append([]*entity.SavedPlace{entry}, saves...)
	return s.storeJSON(ctx, savesKey(clientID), saves)
}

func (s *Store) RemovePlace(ctx context.Context, clientID, placeID string) error {
	saves, err := s.loadSaves(ctx, clientID)
	if err != nil {
		return err
	}
	kept := saves[:0]
	for _, existing := range saves {
		if existing.Place.ID != placeID {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(saves) {
		return errorvalues.ErrSaveNotFound
	}
	return s.storeJSON(ctx, savesKey(clientID), kept)
}

func (s *Store) IsSaved(ctx context.Context, clientID, placeID string) (bool, error) {
	saves, err := s.loadSaves(ctx, clientID)
	if err != nil {
		return false, err
	}
	for _, existing := range saves {
		if existing.Place.ID == placeID {
			return true, nil
		}
	}
	return false, nil
}

// ListSaved returns the client's saves, most recently saved first.
func (s *Store) ListSaved(ctx context.Context, clientID string) ([]*entity.SavedPlace, error) {
	return s.loadSaves(ctx, clientID)
}

func (s *Store) LoadSkips(ctx context.Context, clientID, intent string) ([]string, error) {
	skips, err := s.loadSkipSets(ctx, clientID)
	if err != nil {
		return nil, err
	}
	set := skips[intent]
	if set == nil {
		set = []string{}
	}
	return set, nil
}

func (s *Store) PersistSkips(ctx context.Context, clientID, intent string, placeIDs []string) error {
	skips, err := s.loadSkipSets(ctx, clientID)
	if err != nil {
		return err
	}
	skips[intent] = placeIDs
	return s.storeJSON(ctx, skipsKey(clientID), skips)
}

func (s *Store) ClearSkips(ctx context.Context, clientID, intent string) error {
	skips, err := s.loadSkipSets(ctx, clientID)
	if err != nil {
		return err
	}
	delete(skips, intent)
	if len(skips) == 0 {
		if err := s.conn.Del(ctx, skipsKey(clientID)).Err(); err != nil {
			return errors.New("clearing skip sets error: " + err.Error())
		}
		return nil
	}
	return s.storeJSON(ctx, skipsKey(clientID), skips)
}

func (s *Store) GetPrefs(ctx context.Context, clientID string) (*entity.Preferences, error) {
	prefs := &entity.Preferences{}
	raw, err := s.conn.Get(ctx, prefsKey(clientID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return prefs, nil
		}
		return nil, errors.New("getting prefs error: " + err.Error())
	}
	// A corrupt blob counts as no prefs at all
	if err := sonic.UnmarshalString(raw, prefs); err != nil {
		return &entity.Preferences{}, nil
	}
	return prefs, nil
}

func (s *Store) SetPrefs(ctx context.Context, clientID string, prefs *entity.Preferences) error {
	return s.storeJSON(ctx, prefsKey(clientID), prefs)
}

// loadSaves degrades to an empty list on a missing key or a payload that no
// longer parses.
func (s *Store) loadSaves(ctx context.Context, clientID string) ([]*entity.SavedPlace, error) {
	raw, err := s.conn.Get(ctx, savesKey(clientID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*entity.SavedPlace{}, nil
		}
		return nil, errors.New("getting saved places error: " + err.Error())
	}
	saves := make([]*entity.SavedPlace, 0)
	if err := sonic.UnmarshalString(raw, &saves); err != nil {
		return []*entity.SavedPlace{}, nil
	}
	return saves, nil
}

func (s *Store) loadSkipSets(ctx context.Context, clientID string) (map[string][]string, error) {
	raw, err := s.conn.Get(ctx, skipsKey(clientID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return map[string][]string{}, nil
		}
		return nil, errors.New("getting skip sets error: " + err.Error())
	}
	skips := make(map[string][]string)
	if err := sonic.UnmarshalString(raw, &skips); err != nil {
		return map[string][]string{}, nil
	}
	return skips, nil
}

func (s *Store) storeJSON(ctx context.Context, key string, value any) error {
	raw, err := sonic.MarshalString(value)
	if err != nil {
		return errors.New("marshalling anon state error: " + err.Error())
	}
	if err := s.conn.Set(ctx, key, raw, namespaceTTL).Err(); err != nil {
		return errors.New("storing anon state error: " + err.Error())
	}
	return nil
}
