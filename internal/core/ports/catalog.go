package ports

import (
	"context"
	"encoding/json"

	"github.com/movieportal/portal-api/internal/core/domain"
)

// Catalog is the upstream movie/actor provider. Bodies are relayed verbatim.
type Catalog interface {
	Popular(ctx context.Context, resource domain.Resource, page int) (json.RawMessage, error)
	Details(ctx context.Context, resource domain.Resource, id int) (json.RawMessage, error)
	Search(ctx context.Context, resource domain.Resource, query string, page int) (json.RawMessage, error)
}

// CatalogService validates proxy requests before they leave the process.
type CatalogService interface {
	ListPopular(ctx context.Context, resource domain.Resource, page int) (json.RawMessage, error)
	GetByID(ctx context.Context, resource domain.Resource, id int) (json.RawMessage, error)
	Search(ctx context.Context, resource domain.Resource, query string, page int) (json.RawMessage, error)
	FilmDetail(ctx context.Context, filmID int, username string) (*FilmDetail, error)
}
