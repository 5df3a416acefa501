package master

import (
	"context"
	"fmt"
	"time"

	"github.com/Dev4EM/emp-sub000/internal/domain/master/batch"
	"github.com/Dev4EM/emp-sub000/internal/domain/master/program"
	"github.com/Dev4EM/emp-sub000/internal/domain/master/session"
	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
)

type MasterService interface {
	// Program operations
	CreateProgram(ctx context.Context, req program.CreateProgramRequest) (program.ProgramResponse, error)
	GetProgram(ctx context.Context, id string) (program.ProgramResponse, error)
	ListPrograms(ctx context.Context) ([]program.ProgramResponse, error)
	UpdateProgram(ctx context.Context, req program.UpdateProgramRequest) error
	DeleteProgram(ctx context.Context, id string) error

	// Batch operations
	CreateBatch(ctx context.Context, req batch.CreateBatchRequest) (batch.BatchResponse, error)
	GetBatch(ctx context.Context, id string) (batch.BatchResponse, error)
	ListBatches(ctx context.Context, programID *string) ([]batch.BatchResponse, error)
	UpdateBatch(ctx context.Context, req batch.UpdateBatchRequest) error
	DeleteBatch(ctx context.Context, id string) error

	// Session operations
	CreateSession(ctx context.Context, req session.CreateSessionRequest) (session.SessionResponse, error)
	GetSession(ctx context.Context, id string) (session.SessionResponse, error)
	ListSessions(ctx context.Context, batchID string) ([]session.SessionResponse, error)
	UpdateSession(ctx context.Context, req session.UpdateSessionRequest) error
	DeleteSession(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	programRepo program.ProgramRepository
	batchRepo   batch.BatchRepository
	sessionRepo session.SessionRepository
}

func NewMasterService(
	programRepo program.ProgramRepository,
	batchRepo batch.BatchRepository,
	sessionRepo session.SessionRepository,
) MasterService {
	return &masterServiceImpl{
		programRepo: programRepo,
		batchRepo:   batchRepo,
		sessionRepo: sessionRepo,
	}
}

// ==================== PROGRAM OPERATIONS ====================

func toProgramResponse(p program.Program) program.ProgramResponse {
	return program.ProgramResponse{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
	}
}

func (s *masterServiceImpl) CreateProgram(ctx context.Context, req program.CreateProgramRequest) (program.ProgramResponse, error) {
	if err := req.Validate(); err != nil {
		return program.ProgramResponse{}, err
	}

	created, err := s.programRepo.Create(ctx, program.Program{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	})
	if err != nil {
		return program.ProgramResponse{}, err
	}

	return toProgramResponse(created), nil
}

func (s *masterServiceImpl) GetProgram(ctx context.Context, id string) (program.ProgramResponse, error) {
	p, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		return program.ProgramResponse{}, err
	}
	return toProgramResponse(p), nil
}

func (s *masterServiceImpl) ListPrograms(ctx context.Context) ([]program.ProgramResponse, error) {
	programs, err := s.programRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]program.ProgramResponse, 0, len(programs))
	for _, p := range programs {
		responses = append(responses, toProgramResponse(p))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateProgram(ctx context.Context, req program.UpdateProgramRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.programRepo.Update(ctx, req)
}

func (s *masterServiceImpl) DeleteProgram(ctx context.Context, id string) error {
	return s.programRepo.Delete(ctx, id)
}

// ==================== BATCH OPERATIONS ====================

func toBatchResponse(b batch.Batch) batch.BatchResponse {
	resp := batch.BatchResponse{
		ID:          b.ID,
		ProgramID:   b.ProgramID,
		ProgramName: b.ProgramName,
		Name:        b.Name,
	}
	if b.StartDate != nil {
		start := b.StartDate.Format("2006-01-02")
		resp.StartDate = &start
	}
	if b.EndDate != nil {
		end := b.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}

func (s *masterServiceImpl) CreateBatch(ctx context.Context, req batch.CreateBatchRequest) (batch.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return batch.BatchResponse{}, err
	}

	if _, err := s.programRepo.GetByID(ctx, req.ProgramID); err != nil {
		return batch.BatchResponse{}, err
	}

	entity := batch.Batch{
		ProgramID: req.ProgramID,
		Name:      req.Name,
	}
	if req.StartDate != nil {
		start, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return batch.BatchResponse{}, fmt.Errorf("invalid start_date: %w", err)
		}
		entity.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return batch.BatchResponse{}, fmt.Errorf("invalid end_date: %w", err)
		}
		entity.EndDate = &end
	}

	created, err := s.batchRepo.Create(ctx, entity)
	if err != nil {
		return batch.BatchResponse{}, err
	}

	return toBatchResponse(created), nil
}

func (s *masterServiceImpl) GetBatch(ctx context.Context, id string) (batch.BatchResponse, error) {
	b, err := s.batchRepo.GetByID(ctx, id)
	if err != nil {
		return batch.BatchResponse{}, err
	}
	return toBatchResponse(b), nil
}

func (s *masterServiceImpl) ListBatches(ctx context.Context, programID *string) ([]batch.BatchResponse, error) {
	var (
		batches []batch.Batch
		err     error
	)
	if programID != nil {
		batches, err = s.batchRepo.ListByProgram(ctx, *programID)
	} else {
		batches, err = s.batchRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]batch.BatchResponse, 0, len(batches))
	for _, b := range batches {
		responses = append(responses, toBatchResponse(b))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateBatch(ctx context.Context, req batch.UpdateBatchRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.batchRepo.Update(ctx, req)
}

func (s *masterServiceImpl) DeleteBatch(ctx context.Context, id string) error {
	return s.batchRepo.Delete(ctx, id)
}

// ==================== SESSION OPERATIONS ====================

func toSessionResponse(sess session.Session) session.SessionResponse {
	return session.SessionResponse{
		ID:        sess.ID,
		BatchID:   sess.BatchID,
		BatchName: sess.BatchName,
		Title:     sess.Title,
		Day:       sess.Day.Format("2006-01-02"),
		StartTime: sess.StartTime.String(),
		EndTime:   sess.EndTime.String(),
		Location:  sess.Location,
	}
}

func (s *masterServiceImpl) CreateSession(ctx context.Context, req session.CreateSessionRequest) (session.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return session.SessionResponse{}, err
	}

	b, err := s.batchRepo.GetByID(ctx, req.BatchID)
	if err != nil {
		return session.SessionResponse{}, err
	}

	day, err := time.Parse("2006-01-02", req.Day)
	if err != nil {
		return session.SessionResponse{}, fmt.Errorf("invalid day: %w", err)
	}
	start, err := schedule.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return session.SessionResponse{}, err
	}
	end, err := schedule.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return session.SessionResponse{}, err
	}

	// Reject sessions that collide with an existing one in the batch.
	existing, err := s.sessionRepo.ListByBatch(ctx, b.ID)
	if err != nil {
		return session.SessionResponse{}, err
	}
	for _, other := range existing {
		if other.Day.Equal(day) && start.MinuteOfDay() < other.EndTime.MinuteOfDay() && other.StartTime.MinuteOfDay() < end.MinuteOfDay() {
			return session.SessionResponse{}, session.ErrSessionOverlap
		}
	}

	created, err := s.sessionRepo.Create(ctx, session.Session{
		BatchID:   req.BatchID,
		Title:     req.Title,
		Day:       day,
		StartTime: start,
		EndTime:   end,
		Location:  req.Location,
	})
	if err != nil {
		return session.SessionResponse{}, err
	}

	return toSessionResponse(created), nil
}

func (s *masterServiceImpl) GetSession(ctx context.Context, id string) (session.SessionResponse, error) {
	sess, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return session.SessionResponse{}, err
	}
	return toSessionResponse(sess), nil
}

func (s *masterServiceImpl) ListSessions(ctx context.Context, batchID string) ([]session.SessionResponse, error) {
	sessions, err := s.sessionRepo.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	responses := make([]session.SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		responses = append(responses, toSessionResponse(sess))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateSession(ctx context.Context, req session.UpdateSessionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.sessionRepo.Update(ctx, req)
}

func (s *masterServiceImpl) DeleteSession(ctx context.Context, id string) error {
	return s.sessionRepo.Delete(ctx, id)
}
