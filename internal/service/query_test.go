package service

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/itchan-dev/forum/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqOf(threads []domain.ThreadMetadata, err error) iter.Seq2[domain.ThreadMetadata, error] {
	return func(yield func(domain.ThreadMetadata, error) bool) {
		for _, t := range threads {
			if !yield(t, nil) {
				return
			}
		}
		if err != nil {
			yield(domain.ThreadMetadata{}, err)
		}
	}
}

func TestThreadQueryList(t *testing.T) {
	ctx := context.Background()

	t.Run("Channel is trimmed, author name is exact", func(t *testing.T) {
		storage := &MockThreadQueryStorage{}
		service := NewThreadQuery(storage)
		storage.threadsFunc = func(ctx context.Context, filters domain.ThreadFilters) iter.Seq2[domain.ThreadMetadata, error] {
			assert.Equal(t, domain.ThreadFilters{Channel: "laravel", By: " john", Popular: true}, filters)
			return seqOf([]domain.ThreadMetadata{{Id: 1}, {Id: 2}}, nil)
		}

		threads, err := service.Collect(ctx, domain.ThreadFilters{Channel: " laravel", By: " john", Popular: true})
		require.NoError(t, err)
		assert.Len(t, threads, 2)
	})

	t.Run("Lazy until ranged", func(t *testing.T) {
		calls := 0
		storage := &MockThreadQueryStorage{
			threadsFunc: func(ctx context.Context, filters domain.ThreadFilters) iter.Seq2[domain.ThreadMetadata, error] {
				return func(yield func(domain.ThreadMetadata, error) bool) {
					calls++
					yield(domain.ThreadMetadata{Id: 1}, nil)
				}
			},
		}
		seq := NewThreadQuery(storage).List(ctx, domain.ThreadFilters{})
		assert.Equal(t, 0, calls)

		for range seq {
		}
		for range seq {
		}
		assert.Equal(t, 2, calls, "each range reads again")
	})

	t.Run("Empty result is non-nil", func(t *testing.T) {
		threads, err := NewThreadQuery(&MockThreadQueryStorage{}).Collect(ctx, domain.ThreadFilters{})
		require.NoError(t, err)
		assert.NotNil(t, threads)
		assert.Empty(t, threads)
	})

	t.Run("Error stops collection", func(t *testing.T) {
		storageErr := errors.New("connection reset")
		storage := &MockThreadQueryStorage{
			threadsFunc: func(ctx context.Context, filters domain.ThreadFilters) iter.Seq2[domain.ThreadMetadata, error] {
				return seqOf([]domain.ThreadMetadata{{Id: 1}}, storageErr)
			},
		}
		_, err := NewThreadQuery(storage).Collect(ctx, domain.ThreadFilters{})
		assert.ErrorIs(t, err, storageErr)
	})
}
