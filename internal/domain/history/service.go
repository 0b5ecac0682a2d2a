package history

import (
	"context"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/weathermate/weather-mate/pkg/errors"
	"github.com/weathermate/weather-mate/pkg/util"
)

// Service tracks per-city weather history and the user's searches.
type Service interface {
	RecordObservation(ctx context.Context, city string, temperature float64, condition string) error
	Trend(ctx context.Context, city string) (TrendStats, error)

	RecordSearch(ctx context.Context, city string) error
	RecentSearches(ctx context.Context) ([]string, error)

	AddFavorite(ctx context.Context, city string) error
	RemoveFavorite(ctx context.Context, city string) error
	Favorites(ctx context.Context) ([]string, error)
	IsFavorite(ctx context.Context, city string) (bool, error)
}

type service struct {
	cfg    Config
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the history domain.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	if cfg.MaxObservations <= 0 {
		cfg.MaxObservations = 30
	}
	if cfg.MaxRecent <= 0 {
		cfg.MaxRecent = 10
	}
	return &service{
		cfg:    cfg,
		repo:   repo,
		logger: logger.With("component", "history.service"),
		now:    util.NowUTC,
	}
}

func (s *service) RecordObservation(ctx context.Context, city string, temperature float64, condition string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return apperrors.Wrap("invalid_input", "city cannot be empty", nil)
	}
	obs := Observation{
		City:        city,
		Temperature: temperature,
		Condition:   condition,
		RecordedAt:  s.now(),
	}
	if err := s.repo.SaveObservation(ctx, obs, s.cfg.MaxObservations); err != nil {
		return apperrors.Wrap("history_error", "failed to record observation", err)
	}
	return nil
}

func (s *service) Trend(ctx context.Context, city string) (TrendStats, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return TrendStats{}, apperrors.Wrap("invalid_input", "city cannot be empty", nil)
	}
	observations, err := s.repo.Observations(ctx, city, s.cfg.MaxObservations)
	if err != nil {
		return TrendStats{}, apperrors.Wrap("history_error", "failed to load observations", err)
	}

	stats := TrendStats{City: city, Count: len(observations)}
	if len(observations) == 0 {
		return stats, nil
	}

	sum := 0.0
	stats.MinTemp = observations[0].Temperature
	stats.MaxTemp = observations[0].Temperature
	stats.Temperatures = make([]float64, 0, len(observations))
	for _, obs := range observations {
		stats.Temperatures = append(stats.Temperatures, obs.Temperature)
		sum += obs.Temperature
		if obs.Temperature < stats.MinTemp {
			stats.MinTemp = obs.Temperature
		}
		if obs.Temperature > stats.MaxTemp {
			stats.MaxTemp = obs.Temperature
		}
	}
	stats.AvgTemp = sum / float64(len(observations))
	return stats, nil
}

func (s *service) RecordSearch(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return apperrors.Wrap("invalid_input", "city cannot be empty", nil)
	}
	if err := s.repo.AddRecentSearch(ctx, city, s.cfg.MaxRecent); err != nil {
		return apperrors.Wrap("history_error", "failed to record search", err)
	}
	return nil
}

func (s *service) RecentSearches(ctx context.Context) ([]string, error) {
	recent, err := s.repo.RecentSearches(ctx, s.cfg.MaxRecent)
	if err != nil {
		return nil, apperrors.Wrap("history_error", "failed to load recent searches", err)
	}
	return recent, nil
}

func (s *service) AddFavorite(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return apperrors.Wrap("invalid_input", "city cannot be empty", nil)
	}
	if err := s.repo.AddFavorite(ctx, city); err != nil {
		return apperrors.Wrap("history_error", "failed to add favorite", err)
	}
	return nil
}

func (s *service) RemoveFavorite(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return apperrors.Wrap("invalid_input", "city cannot be empty", nil)
	}
	if err := s.repo.RemoveFavorite(ctx, city); err != nil {
		return apperrors.Wrap("history_error", "failed to remove favorite", err)
	}
	return nil
}

func (s *service) Favorites(ctx context.Context) ([]string, error) {
	favorites, err := s.repo.Favorites(ctx)
	if err != nil {
		return nil, apperrors.Wrap("history_error", "failed to load favorites", err)
	}
	return favorites, nil
}

func (s *service) IsFavorite(ctx context.Context, city string) (bool, error) {
	favorites, err := s.Favorites(ctx)
	if err != nil {
		return false, err
	}
	for _, favorite := range favorites {
		if strings.EqualFold(favorite, strings.TrimSpace(city)) {
			return true, nil
		}
	}
	return false, nil
}
