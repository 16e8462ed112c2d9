package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/itchan-dev/forum/internal/domain"
	internal_errors "github.com/itchan-dev/forum/internal/errors"
)

type channelRow struct {
	Id        int64     `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
}

func (r channelRow) toDomain() domain.Channel {
	return domain.Channel{Id: r.Id, Name: r.Name, Slug: r.Slug, CreatedAt: r.CreatedAt}
}

func (s *Storage) CreateChannel(ctx context.Context, creationData domain.ChannelCreationData) (domain.Channel, error) {
	var row channelRow
	err := s.db.GetContext(ctx, &row, `
        INSERT INTO channels (name, slug)
        VALUES ($1, $2)
        RETURNING id, name, slug, created_at
    `, creationData.Name, creationData.Slug)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return domain.Channel{}, internal_errors.Conflict("Channel with this slug already exists")
		}
		return domain.Channel{}, fmt.Errorf("failed to insert channel: %w", err)
	}
	return row.toDomain(), nil
}

func (s *Storage) Channel(ctx context.Context, slug domain.ChannelSlug) (domain.Channel, error) {
	var row channelRow
	err := s.db.GetContext(ctx, &row, `SELECT id, name, slug, created_at FROM channels WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Channel{}, internal_errors.NotFound("Channel not found")
		}
		return domain.Channel{}, fmt.Errorf("failed to fetch channel: %w", err)
	}
	return row.toDomain(), nil
}

func (s *Storage) Channels(ctx context.Context) ([]domain.Channel, error) {
	var rows []channelRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, name, slug, created_at FROM channels ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("failed to fetch channels: %w", err)
	}
	channels := make([]domain.Channel, len(rows))
	for i, r := range rows {
		channels[i] = r.toDomain()
	}
	return channels, nil
}
