package leave

import (
	"context"
)

// LeaveService defines the application and approval workflow.
type LeaveService interface {
	// Apply files a leave request for the authenticated employee.
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)

	// Cancel withdraws the authenticated employee's own pending request.
	Cancel(ctx context.Context, id string) error

	// GetMyLeaves lists the authenticated employee's requests.
	GetMyLeaves(ctx context.Context, filter Filter) (ListLeavesResponse, error)

	// ListLeaves lists requests across employees (admin).
	ListLeaves(ctx context.Context, filter Filter) (ListLeavesResponse, error)

	// Approve transitions a pending request to approved (admin).
	Approve(ctx context.Context, id string) (LeaveResponse, error)

	// Reject transitions a pending request to rejected with a reason
	// (admin).
	Reject(ctx context.Context, req RejectLeaveRequest) (LeaveResponse, error)
}
