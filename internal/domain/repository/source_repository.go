package repository

import (
	"context"

	"github.com/nldi-service/internal/domain"
)

// CrawlerSourceRepository reads and reconciles the nldi_data.crawler_source
// table. Upsert is the only write this service ever performs; rows are never
// deleted here.
type CrawlerSourceRepository interface {
	GetBySuffix(ctx context.Context, suffix string) (*domain.CrawlerSource, error)
	GetByID(ctx context.Context, id int64) (*domain.CrawlerSource, error)
	List(ctx context.Context) ([]domain.CrawlerSource, error)
	Upsert(ctx context.Context, src domain.CrawlerSource) error
}
