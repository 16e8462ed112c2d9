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

const replySelect = `
    SELECT
        r.id, r.thread_id, c.slug AS channel, r.user_id, u.name AS author, r.body, r.created_at
    FROM replies r
    JOIN users u ON u.id = r.user_id
    JOIN threads t ON t.id = r.thread_id
    JOIN channels c ON c.id = t.channel_id
`

type replyRow struct {
	Id        int64     `db:"id"`
	ThreadId  int64     `db:"thread_id"`
	Channel   string    `db:"channel"`
	UserId    int64     `db:"user_id"`
	Author    string    `db:"author"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}

func (r replyRow) toDomain() domain.Reply {
	return domain.Reply{
		Id:        r.Id,
		ThreadId:  r.ThreadId,
		Channel:   r.Channel,
		UserId:    r.UserId,
		Author:    r.Author,
		Body:      r.Body,
		CreatedAt: r.CreatedAt,
	}
}

// CreateReply attaches a reply to a thread and bumps its replies_count in the same
// transaction. The counter update runs first: it takes the thread row lock, which
// serializes concurrent replies and fails cleanly if the thread is already gone.
func (s *Storage) CreateReply(ctx context.Context, creationData domain.ReplyCreationData) (domain.Reply, error) {
	var reply domain.Reply
	err := s.withTx(ctx, nil, func(tx *sqlx.Tx) error {
		var slug domain.ChannelSlug
		err := tx.QueryRowxContext(ctx, `
            UPDATE threads t
            SET replies_count = t.replies_count + 1
            FROM channels c
            WHERE t.id = $1 AND c.id = t.channel_id
            RETURNING c.slug
        `, creationData.ThreadId).Scan(&slug)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return internal_errors.NotFound("Thread not found")
			}
			return fmt.Errorf("failed to update replies count: %w", err)
		}

		var row replyRow
		err = tx.GetContext(ctx, &row, `
            INSERT INTO replies (thread_id, user_id, body)
            VALUES ($1, $2, $3)
            RETURNING id, thread_id, user_id, body, created_at
        `, creationData.ThreadId, creationData.Author.Id, creationData.Body)
		if err != nil {
			if pqCode(err) == foreignKeyViolation {
				return &internal_errors.ErrorWithStatusCode{Message: "Author not found", StatusCode: http.StatusUnprocessableEntity}
			}
			return fmt.Errorf("failed to insert reply: %w", err)
		}
		row.Channel = slug
		row.Author = creationData.Author.Name
		reply = row.toDomain()
		return nil
	})
	if err != nil {
		return domain.Reply{}, err
	}
	return reply, nil
}

func (s *Storage) Reply(ctx context.Context, id domain.ReplyId) (domain.Reply, error) {
	var row replyRow
	err := s.db.GetContext(ctx, &row, replySelect+` WHERE r.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reply{}, internal_errors.NotFound("Reply not found")
		}
		return domain.Reply{}, fmt.Errorf("failed to fetch reply: %w", err)
	}
	return row.toDomain(), nil
}
