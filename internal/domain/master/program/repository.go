package program

import "context"

type ProgramRepository interface {
	Create(ctx context.Context, program Program) (Program, error)
	GetByID(ctx context.Context, id string) (Program, error)
	List(ctx context.Context) ([]Program, error)
	Update(ctx context.Context, req UpdateProgramRequest) error
	Delete(ctx context.Context, id string) error
}
