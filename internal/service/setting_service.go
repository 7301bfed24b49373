package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/jxdata/portal/internal/content"
	"github.com/jxdata/portal/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	// statsCacheTTL bounds how often the landing page hits the settings table.
	statsCacheTTL = time.Minute
	// statsFailureBackoff is how long defaults are served after a failed read.
	statsFailureBackoff = 10 * time.Second
)

// SettingReader lists stored site settings.
type SettingReader interface {
	GetAll(ctx context.Context) ([]model.SiteSetting, error)
}

type SettingService struct {
	settingRepo SettingReader
	defaults    []content.Stat
	log         zerolog.Logger
	now         func() time.Time

	refresh   singleflight.Group
	mu        sync.Mutex
	cached    []content.Stat
	expiresAt time.Time
}

func NewSettingService(settingRepo SettingReader, catalog *content.Catalog, log zerolog.Logger) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		defaults:    catalog.Stats,
		log:         log.With().Str("component", "setting_service").Logger(),
		now:         time.Now,
	}
}

func (s *SettingService) GetAllSettings(ctx context.Context) (map[string]string, error) {
	settingsList, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get all settings")
		return nil, err
	}

	settingsMap := make(map[string]string)
	for _, setting := range settingsList {
		settingsMap[setting.Key] = setting.Value
	}
	return settingsMap, nil
}

// Stats returns the hero statistics with numeric overrides from the settings
// table applied. Lookup failures fall back to the catalog defaults, which are
// then served for statsFailureBackoff before the table is tried again.
func (s *SettingService) Stats(ctx context.Context) []content.Stat {
	s.mu.Lock()
	if s.cached != nil && s.now().Before(s.expiresAt) {
		stats := s.cached
		s.mu.Unlock()
		return stats
	}
	s.mu.Unlock()

	// Concurrent misses share one settings read.
	v, _, _ := s.refresh.Do("stats", func() (interface{}, error) {
		stats, ttl := s.loadStats(ctx)

		s.mu.Lock()
		s.cached = stats
		s.expiresAt = s.now().Add(ttl)
		s.mu.Unlock()

		return stats, nil
	})
	return v.([]content.Stat)
}

func (s *SettingService) loadStats(ctx context.Context) ([]content.Stat, time.Duration) {
	stats := make([]content.Stat, len(s.defaults))
	copy(stats, s.defaults)

	settings, err := s.GetAllSettings(ctx)
	if err != nil {
		return stats, statsFailureBackoff
	}

	for i, st := range stats {
		raw, ok := settings[st.Key]
		if !ok {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.log.Warn().Str("key", st.Key).Str("value", raw).Msg("ignoring non-numeric stat override")
			continue
		}
		stats[i].Value = v
	}

	return stats, statsCacheTTL
}
