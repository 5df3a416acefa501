package session

import (
	"context"
	"time"
)

type SessionRepository interface {
	Create(ctx context.Context, session Session) (Session, error)
	GetByID(ctx context.Context, id string) (Session, error)
	ListByBatch(ctx context.Context, batchID string) ([]Session, error)
	ListByDay(ctx context.Context, day time.Time) ([]Session, error)
	Update(ctx context.Context, req UpdateSessionRequest) error
	Delete(ctx context.Context, id string) error
}
