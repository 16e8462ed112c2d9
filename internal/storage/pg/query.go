package pg

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/itchan-dev/forum/internal/domain"
)

const (
	latestOrder  = `ORDER BY t.created_at DESC, t.id DESC`
	popularOrder = `ORDER BY t.replies_count DESC, t.created_at ASC, t.id ASC`
)

// threadFilterClauses is the only place where ThreadFilters become SQL.
// Filters combine with AND.
func threadFilterClauses(filters domain.ThreadFilters) (where string, order string, args []any) {
	var conds []string
	if filters.Channel != "" {
		args = append(args, filters.Channel)
		conds = append(conds, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if filters.By != "" {
		args = append(args, filters.By)
		conds = append(conds, fmt.Sprintf("u.name = $%d", len(args)))
	}
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	order = latestOrder
	if filters.Popular {
		order = popularOrder
	}
	return where, order, args
}

func threadListQuery(filters domain.ThreadFilters) (string, []any) {
	where, order, args := threadFilterClauses(filters)
	return threadSelect + where + "\n" + order, args
}

// Threads returns a lazy listing of threads matching filters.
// Every range over the sequence runs a new query, so it always reflects current data.
func (s *Storage) Threads(ctx context.Context, filters domain.ThreadFilters) iter.Seq2[domain.ThreadMetadata, error] {
	query, args := threadListQuery(filters)
	return func(yield func(domain.ThreadMetadata, error) bool) {
		rows, err := s.db.QueryxContext(ctx, query, args...)
		if err != nil {
			yield(domain.ThreadMetadata{}, fmt.Errorf("failed to query threads: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var row threadRow
			if err := rows.StructScan(&row); err != nil {
				yield(domain.ThreadMetadata{}, fmt.Errorf("failed to scan thread: %w", err))
				return
			}
			if !yield(row.toDomain(), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(domain.ThreadMetadata{}, fmt.Errorf("error iterating threads: %w", err))
		}
	}
}
