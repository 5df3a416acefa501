package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/notification"
	"github.com/Dev4EM/emp-sub000/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

const notificationColumns = `id, recipient_id, sender_id, type, title, message, data, is_read, read_at, created_at`

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var n notification.Notification
	var dataJSON []byte
	err := row.Scan(
		&n.ID,
		&n.RecipientID,
		&n.SenderID,
		&n.Type,
		&n.Title,
		&n.Message,
		&dataJSON,
		&n.IsRead,
		&n.ReadAt,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(dataJSON) > 0 {
		if err := json.Unmarshal(dataJSON, &n.Data); err != nil {
			return nil, fmt.Errorf("failed to decode notification data: %w", err)
		}
	}
	return &n, nil
}

// Create implements notification.Repository.
func (r *notificationRepositoryImpl) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	dataJSON, err := json.Marshal(n.Data)
	if err != nil {
		return fmt.Errorf("failed to encode notification data: %w", err)
	}

	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)
	`

	_, err = q.Exec(ctx, query,
		n.ID,
		n.RecipientID,
		n.SenderID,
		n.Type,
		n.Title,
		n.Message,
		dataJSON,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// CreateBatch implements notification.Repository.
func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)
	`
	for _, n := range notifications {
		dataJSON, err := json.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("failed to encode notification data: %w", err)
		}
		batch.Queue(query, n.ID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message, dataJSON, n.CreatedAt)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range notifications {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to create notification batch: %w", err)
		}
	}
	return nil
}

// GetByID implements notification.Repository.
func (r *notificationRepositoryImpl) GetByID(ctx context.Context, id string) (*notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	n, err := scanNotification(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notification.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

// GetByUserID implements notification.Repository.
func (r *notificationRepositoryImpl) GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE recipient_id = $1`
	if unreadOnly {
		where += ` AND is_read = FALSE`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM notifications` + where
	if err := q.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `SELECT ` + notificationColumns + ` FROM notifications` + where + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := q.Query(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return notifications, total, nil
}

// GetUnreadCount implements notification.Repository.
func (r *notificationRepositoryImpl) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`

	var count int
	if err := q.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead implements notification.Repository.
func (r *notificationRepositoryImpl) MarkAsRead(ctx context.Context, ids []string, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = ANY($1) AND recipient_id = $2 AND is_read = FALSE
	`

	if _, err := q.Exec(ctx, query, ids, userID); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}

// MarkAllAsRead implements notification.Repository.
func (r *notificationRepositoryImpl) MarkAllAsRead(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE recipient_id = $1 AND is_read = FALSE
	`

	if _, err := q.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	return nil
}

// Delete implements notification.Repository.
func (r *notificationRepositoryImpl) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`

	commandTag, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// DeleteReadBefore implements notification.Repository.
func (r *notificationRepositoryImpl) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM notifications WHERE is_read = TRUE AND created_at < $1`

	commandTag, err := q.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge notifications: %w", err)
	}
	return int(commandTag.RowsAffected()), nil
}
