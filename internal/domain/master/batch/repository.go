package batch

import "context"

type BatchRepository interface {
	Create(ctx context.Context, batch Batch) (Batch, error)
	GetByID(ctx context.Context, id string) (Batch, error)
	ListByProgram(ctx context.Context, programID string) ([]Batch, error)
	List(ctx context.Context) ([]Batch, error)
	Update(ctx context.Context, req UpdateBatchRequest) error
	Delete(ctx context.Context, id string) error
}
