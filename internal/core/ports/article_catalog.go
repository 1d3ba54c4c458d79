package ports

import (
	"context"

	"github.com/99minutos/auth-api/internal/core/domain"
)

// ArticleCatalog lists the news served on /private/news.
type ArticleCatalog interface {
	List(ctx context.Context) ([]domain.Article, error)
}
