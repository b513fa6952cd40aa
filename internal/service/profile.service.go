package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/wisemik/veretha-backend/internal/provider/proxycurl"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const profileCacheTTL = 24 * time.Hour

type ProfileService struct {
	proxycurl *proxycurl.Client
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewProfileService(pc *proxycurl.Client, rdb *redis.Client, logger *zap.Logger) *ProfileService {
	return &ProfileService{proxycurl: pc, rdb: rdb, logger: logger}
}

// Lookup fetches a LinkedIn profile, serving from the Redis cache when the
// URL was looked up in the last 24h. Cache failures never fail the lookup.
func (s *ProfileService) Lookup(ctx context.Context, linkedinURL string) (*proxycurl.Profile, error) {
	key := "linkedin:profile:" + linkedinURL

	if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var p proxycurl.Profile
		if json.Unmarshal([]byte(cached), &p) == nil {
			return &p, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("profile cache read failed", zap.Error(err))
	}

	profile, err := s.proxycurl.PersonProfile(ctx, linkedinURL)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(profile); err == nil {
		if err := s.rdb.Set(ctx, key, b, profileCacheTTL).Err(); err != nil {
			s.logger.Warn("profile cache write failed", zap.Error(err))
		}
	}
	return profile, nil
}
