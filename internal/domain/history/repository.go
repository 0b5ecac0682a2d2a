package history

import "context"

// Repository persists observations, recent searches and favorites.
type Repository interface {
	SaveObservation(ctx context.Context, obs Observation, keep int) error
	Observations(ctx context.Context, city string, limit int) ([]Observation, error)

	AddRecentSearch(ctx context.Context, city string, keep int) error
	RecentSearches(ctx context.Context, limit int) ([]string, error)

	AddFavorite(ctx context.Context, city string) error
	RemoveFavorite(ctx context.Context, city string) error
	Favorites(ctx context.Context) ([]string, error)
}
