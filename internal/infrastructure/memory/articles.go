package memory

import (
	"context"

	"github.com/99minutos/auth-api/internal/core/domain"
)

var defaultArticles = []domain.Article{
	{
		ID:      "1",
		Title:   "Приключение",
		Image:   "https://i.pravatar.cc/300?img=1",
		Content: "Присоединяйтесь к нам в увлекательное приключение по Зеленым горам!",
	},
	{
		ID:      "2",
		Title:   "Опыт сплава по реке",
		Image:   "https://i.pravatar.cc/300?img=2",
		Content: "Приготовьтесь к захватывающему путешествию по бурным порогам реки.",
	},
	{
		ID:      "3",
		Title:   "Восхождение на вершину",
		Image:   "https://i.pravatar.cc/300?img=3",
		Content: "Станьте частью команды, покоряющей самые высокие горные пики.",
	},
	{
		ID:      "4",
		Title:   "Ночь в пустыне",
		Image:   "https://i.pravatar.cc/300?img=4",
		Content: "Исследуйте тайны пустыни и наслаждайтесь звездным небом вдали от городской суеты.",
	},
}

// ArticleCatalog serves a fixed list of articles.
type ArticleCatalog struct {
	articles []domain.Article
}

// NewArticleCatalog returns a catalog over articles, or over the built-in
// news list when articles is nil.
func NewArticleCatalog(articles []domain.Article) *ArticleCatalog {
	if articles == nil {
		articles = defaultArticles
	}
	return &ArticleCatalog{articles: articles}
}

// List returns a copy so callers cannot mutate the catalog.
func (c *ArticleCatalog) List(_ context.Context) ([]domain.Article, error) {
	out := make([]domain.Article, len(c.articles))
	copy(out, c.articles)
	return out, nil
}
