package service

import (
	"context"
	"iter"
	"strings"

	"github.com/itchan-dev/forum/internal/domain"
)

type ThreadQueryService interface {
	List(ctx context.Context, filters domain.ThreadFilters) iter.Seq2[domain.ThreadMetadata, error]
	Collect(ctx context.Context, filters domain.ThreadFilters) ([]domain.ThreadMetadata, error)
}

type ThreadQuery struct {
	storage ThreadQueryStorage
}

type ThreadQueryStorage interface {
	Threads(ctx context.Context, filters domain.ThreadFilters) iter.Seq2[domain.ThreadMetadata, error]
}

func NewThreadQuery(storage ThreadQueryStorage) *ThreadQuery {
	return &ThreadQuery{storage: storage}
}

// List returns threads matching every set filter. The sequence is lazy:
// nothing is read until it is ranged over, and each range reads current data.
func (q *ThreadQuery) List(ctx context.Context, filters domain.ThreadFilters) iter.Seq2[domain.ThreadMetadata, error] {
	filters.Channel = strings.TrimSpace(filters.Channel)
	return q.storage.Threads(ctx, filters)
}

func (q *ThreadQuery) Collect(ctx context.Context, filters domain.ThreadFilters) ([]domain.ThreadMetadata, error) {
	threads := []domain.ThreadMetadata{}
	for thread, err := range q.List(ctx, filters) {
		if err != nil {
			return nil, err
		}
		threads = append(threads, thread)
	}
	return threads, nil
}
