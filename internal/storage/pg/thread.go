package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/itchan-dev/forum/internal/domain"
	internal_errors "github.com/itchan-dev/forum/internal/errors"
	"github.com/jmoiron/sqlx"
)

const threadSelect = `
    SELECT
        t.id, t.user_id, u.name AS author, t.channel_id, c.slug AS channel,
        t.title, t.body, t.replies_count, t.created_at
    FROM threads t
    JOIN users u ON u.id = t.user_id
    JOIN channels c ON c.id = t.channel_id
`

type threadRow struct {
	Id           int64     `db:"id"`
	UserId       int64     `db:"user_id"`
	Author       string    `db:"author"`
	ChannelId    int64     `db:"channel_id"`
	Channel      string    `db:"channel"`
	Title        string    `db:"title"`
	Body         string    `db:"body"`
	RepliesCount int       `db:"replies_count"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r threadRow) toDomain() domain.ThreadMetadata {
	return domain.ThreadMetadata{
		Id:           r.Id,
		UserId:       r.UserId,
		Author:       r.Author,
		ChannelId:    r.ChannelId,
		Channel:      r.Channel,
		Title:        r.Title,
		Body:         r.Body,
		RepliesCount: r.RepliesCount,
		CreatedAt:    r.CreatedAt,
	}
}

func (s *Storage) CreateThread(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadMetadata, error) {
	var thread domain.ThreadMetadata
	err := s.withTx(ctx, nil, func(tx *sqlx.Tx) error {
		// FOR SHARE keeps the channel from disappearing before the insert commits
		var slug domain.ChannelSlug
		err := tx.QueryRowxContext(ctx, `SELECT slug FROM channels WHERE id = $1 FOR SHARE`, creationData.ChannelId).Scan(&slug)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return internal_errors.NewValidationError("channel_id", "The selected channel id is invalid.")
			}
			return fmt.Errorf("failed to validate channel: %w", err)
		}

		var row threadRow
		err = tx.GetContext(ctx, &row, `
            INSERT INTO threads (user_id, channel_id, title, body)
            VALUES ($1, $2, $3, $4)
            RETURNING id, user_id, channel_id, title, body, replies_count, created_at
        `, creationData.Author.Id, creationData.ChannelId, creationData.Title, creationData.Body)
		if err != nil {
			if pqCode(err) == foreignKeyViolation {
				return &internal_errors.ErrorWithStatusCode{Message: "Author not found", StatusCode: http.StatusUnprocessableEntity}
			}
			return fmt.Errorf("failed to insert thread: %w", err)
		}
		row.Channel = slug
		row.Author = creationData.Author.Name
		thread = row.toDomain()
		return nil
	})
	if err != nil {
		return domain.ThreadMetadata{}, err
	}
	return thread, nil
}

// Thread returns the thread with its replies, oldest first, from one snapshot so
// replies_count always matches the replies returned.
func (s *Storage) Thread(ctx context.Context, channel domain.ChannelSlug, id domain.ThreadId) (domain.Thread, error) {
	var thread domain.Thread
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := s.withTx(ctx, opts, func(tx *sqlx.Tx) error {
		var row threadRow
		err := tx.GetContext(ctx, &row, threadSelect+` WHERE t.id = $1 AND c.slug = $2`, id, channel)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return internal_errors.NotFound("Thread not found")
			}
			return fmt.Errorf("failed to fetch thread: %w", err)
		}

		var replies []replyRow
		err = tx.SelectContext(ctx, &replies, replySelect+`
            WHERE r.thread_id = $1
            ORDER BY r.created_at, r.id
        `, id)
		if err != nil {
			return fmt.Errorf("failed to fetch replies: %w", err)
		}

		thread.ThreadMetadata = row.toDomain()
		thread.Replies = make([]domain.Reply, len(replies))
		for i, r := range replies {
			thread.Replies[i] = r.toDomain()
		}
		return nil
	})
	if err != nil {
		return domain.Thread{}, err
	}
	return thread, nil
}

func (s *Storage) ThreadMetadata(ctx context.Context, id domain.ThreadId) (domain.ThreadMetadata, error) {
	var row threadRow
	err := s.db.GetContext(ctx, &row, threadSelect+` WHERE t.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ThreadMetadata{}, internal_errors.NotFound("Thread not found")
		}
		return domain.ThreadMetadata{}, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return row.toDomain(), nil
}

// DeleteThread removes every reply of the thread and then the thread itself in one
// transaction. The thread row is locked first, so concurrent CreateReply calls
// either finish before the delete or fail with not found after it.
// Returns the number of replies removed.
func (s *Storage) DeleteThread(ctx context.Context, id domain.ThreadId) (int64, error) {
	var deletedReplies int64
	err := s.withTx(ctx, nil, func(tx *sqlx.Tx) error {
		var locked domain.ThreadId
		err := tx.QueryRowxContext(ctx, `SELECT id FROM threads WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return internal_errors.NotFound("Thread not found")
			}
			return fmt.Errorf("failed to lock thread: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM replies WHERE thread_id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete replies: %w", err)
		}
		if deletedReplies, err = result.RowsAffected(); err != nil {
			return fmt.Errorf("failed to count deleted replies: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM threads WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete thread: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deletedReplies, nil
}
