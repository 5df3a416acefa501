package leave

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev4EM/emp-sub000/internal/domain/employee"
	"github.com/Dev4EM/emp-sub000/internal/domain/leave"
	"github.com/Dev4EM/emp-sub000/internal/domain/notification"
	"github.com/Dev4EM/emp-sub000/internal/domain/user"
	"github.com/Dev4EM/emp-sub000/internal/pkg/sse"
)

const (
	testEmployeeID = "11111111-1111-1111-1111-111111111111"
	testUserID     = "33333333-3333-3333-3333-333333333333"
	adminUserID    = "44444444-4444-4444-4444-444444444444"
)

// ==================== FAKES ====================

type memLeaveRepo struct {
	records map[string]leave.LeaveRecord
	nextID  int
}

func newMemLeaveRepo() *memLeaveRepo {
	return &memLeaveRepo{records: make(map[string]leave.LeaveRecord)}
}

func (r *memLeaveRepo) Create(_ context.Context, record leave.LeaveRecord) (leave.LeaveRecord, error) {
	for _, rec := range r.records {
		if rec.EmployeeID == record.EmployeeID && rec.Day.Equal(record.Day) {
			return leave.LeaveRecord{}, leave.ErrLeaveAlreadyApplied
		}
	}
	r.nextID++
	record.ID = fmt.Sprintf("leave-%d", r.nextID)
	record.CreatedAt = time.Now()
	r.records[record.ID] = record
	return record, nil
}

func (r *memLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRecord, error) {
	if rec, ok := r.records[id]; ok {
		return rec, nil
	}
	return leave.LeaveRecord{}, leave.ErrLeaveNotFound
}

func (r *memLeaveRepo) GetApprovedByEmployeeAndDay(_ context.Context, employeeID string, day time.Time) (*leave.LeaveRecord, error) {
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Day.Equal(day) && rec.Status == leave.StatusApproved {
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *memLeaveRepo) ListApprovedByEmployeeRange(_ context.Context, employeeID string, from, to time.Time) (map[string]leave.LeaveRecord, error) {
	out := make(map[string]leave.LeaveRecord)
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Status == leave.StatusApproved &&
			!rec.Day.Before(from) && !rec.Day.After(to) {
			out[rec.Day.Format("2006-01-02")] = rec
		}
	}
	return out, nil
}

func (r *memLeaveRepo) ListByEmployee(_ context.Context, employeeID string, _ leave.Filter) ([]leave.LeaveRecord, int64, error) {
	var out []leave.LeaveRecord
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memLeaveRepo) List(_ context.Context, filter leave.Filter) ([]leave.LeaveRecord, int64, error) {
	var out []leave.LeaveRecord
	for _, rec := range r.records {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(rec.Status) != *filter.Status {
			continue
		}
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (r *memLeaveRepo) UpdateStatus(_ context.Context, record leave.LeaveRecord) error {
	existing, ok := r.records[record.ID]
	if !ok {
		return leave.ErrLeaveNotFound
	}
	if existing.Status != leave.StatusPending {
		return leave.ErrLeaveAlreadyProcessed
	}
	r.records[record.ID] = record
	return nil
}

func (r *memLeaveRepo) Delete(_ context.Context, id string) error {
	delete(r.records, id)
	return nil
}

type memEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *memEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *memEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if emp, ok := r.employees[id]; ok {
		return emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *memEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.UserID != nil && *emp.UserID == userID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *memEmployeeRepo) List(_ context.Context, _ employee.Filter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (r *memEmployeeRepo) ListUserIDs(_ context.Context) ([]string, error) {
	return nil, nil
}

func (r *memEmployeeRepo) Update(_ context.Context, emp employee.Employee) error {
	r.employees[emp.ID] = emp
	return nil
}

func (r *memEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(r.employees, id)
	return nil
}

type memUserRepo struct {
	users map[string]user.User
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (r *memUserRepo) ListByRole(_ context.Context, role user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, userID string, role user.Role) error {
	u := r.users[userID]
	u.Role = role
	r.users[userID] = u
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	u := r.users[userID]
	u.PasswordHash = passwordHash
	r.users[userID] = u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

// recordingNotifier captures queued notifications for assertions.
type recordingNotifier struct {
	queued []notification.CreateNotificationRequest
}

func (n *recordingNotifier) QueueNotification(_ context.Context, req notification.CreateNotificationRequest) error {
	n.queued = append(n.queued, req)
	return nil
}

func (n *recordingNotifier) QueueBulkNotification(_ context.Context, reqs []notification.CreateNotificationRequest) error {
	n.queued = append(n.queued, reqs...)
	return nil
}

func (n *recordingNotifier) Broadcast(context.Context, string, notification.BroadcastRequest) error {
	return nil
}

func (n *recordingNotifier) GetNotifications(context.Context, string, int, int, bool) (*notification.NotificationListResponse, error) {
	return nil, nil
}

func (n *recordingNotifier) GetUnreadCount(context.Context, string) (int, error) { return 0, nil }

func (n *recordingNotifier) MarkAsRead(context.Context, string, notification.MarkAsReadRequest) error {
	return nil
}

func (n *recordingNotifier) MarkAllAsRead(context.Context, string) error { return nil }

func (n *recordingNotifier) Delete(context.Context, string, string) error { return nil }

func (n *recordingNotifier) PurgeRead(context.Context, time.Duration) (int, error) { return 0, nil }

func (n *recordingNotifier) Subscribe(string) (<-chan sse.Event, func()) {
	return nil, func() {}
}

func (n *recordingNotifier) Stop() {}

// ==================== HELPERS ====================

type leaveTestEnv struct {
	svc      *leaveServiceImpl
	repo     *memLeaveRepo
	notifier *recordingNotifier
}

func newLeaveTestEnv(t *testing.T) *leaveTestEnv {
	t.Helper()
	location, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	userID := testUserID
	employees := &memEmployeeRepo{employees: map[string]employee.Employee{
		testEmployeeID: {ID: testEmployeeID, FullName: "Asha Verma", UserID: &userID},
	}}
	users := &memUserRepo{users: map[string]user.User{
		adminUserID: {ID: adminUserID, Email: "admin@example.com", Role: user.RoleAdmin},
		testUserID:  {ID: testUserID, Email: "asha@example.com", Role: user.RoleEmployee},
	}}

	repo := newMemLeaveRepo()
	notifier := &recordingNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewLeaveService(repo, employees, users, notifier, location, logger).(*leaveServiceImpl)
	return &leaveTestEnv{svc: svc, repo: repo, notifier: notifier}
}

func contextWithClaims(t *testing.T, userID, employeeID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	claims := map[string]interface{}{
		"user_id": userID,
		"type":    "access",
	}
	if employeeID != "" {
		claims["employee_id"] = employeeID
	}
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func applyTestLeave(t *testing.T, env *leaveTestEnv) leave.LeaveResponse {
	t.Helper()
	ctx := contextWithClaims(t, testUserID, testEmployeeID)
	resp, err := env.svc.Apply(ctx, leave.ApplyLeaveRequest{
		Day:     "2025-04-10",
		Kind:    "paid",
		Portion: "full",
		Reason:  "family function",
	})
	require.NoError(t, err)
	return resp
}

// ==================== TESTS ====================

func TestApplyCreatesPendingAndNotifiesAdmins(t *testing.T) {
	env := newLeaveTestEnv(t)

	resp := applyTestLeave(t, env)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, testEmployeeID, resp.EmployeeID)

	require.Len(t, env.notifier.queued, 1)
	queued := env.notifier.queued[0]
	assert.Equal(t, adminUserID, queued.RecipientID)
	assert.Equal(t, notification.TypeLeaveApplied, queued.Type)
}

func TestApplyTwiceSameDay(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := contextWithClaims(t, testUserID, testEmployeeID)

	applyTestLeave(t, env)

	_, err := env.svc.Apply(ctx, leave.ApplyLeaveRequest{
		Day:     "2025-04-10",
		Kind:    "unpaid",
		Portion: "full",
		Reason:  "unwell",
	})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyApplied)
}

func TestApplyWithoutEmployeeClaim(t *testing.T) {
	env := newLeaveTestEnv(t)
	ctx := contextWithClaims(t, adminUserID, "")

	_, err := env.svc.Apply(ctx, leave.ApplyLeaveRequest{
		Day:     "2025-04-10",
		Kind:    "paid",
		Portion: "full",
		Reason:  "family function",
	})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestApproveNotifiesEmployee(t *testing.T) {
	env := newLeaveTestEnv(t)
	created := applyTestLeave(t, env)
	env.notifier.queued = nil

	adminCtx := contextWithClaims(t, adminUserID, "")
	decided, err := env.svc.Approve(adminCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, decided.Status)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, adminUserID, *decided.DecidedBy)
	assert.NotNil(t, decided.DecidedAt)

	require.Len(t, env.notifier.queued, 1)
	assert.Equal(t, testUserID, env.notifier.queued[0].RecipientID)
	assert.Equal(t, notification.TypeLeaveApproved, env.notifier.queued[0].Type)
}

func TestRejectKeepsReason(t *testing.T) {
	env := newLeaveTestEnv(t)
	created := applyTestLeave(t, env)

	adminCtx := contextWithClaims(t, adminUserID, "")
	decided, err := env.svc.Reject(adminCtx, leave.RejectLeaveRequest{
		ID:     created.ID,
		Reason: "short staffed that week",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, decided.Status)
	require.NotNil(t, decided.RejectionReason)
	assert.Equal(t, "short staffed that week", *decided.RejectionReason)
}

func TestDecideTwice(t *testing.T) {
	env := newLeaveTestEnv(t)
	created := applyTestLeave(t, env)

	adminCtx := contextWithClaims(t, adminUserID, "")
	_, err := env.svc.Approve(adminCtx, created.ID)
	require.NoError(t, err)

	_, err = env.svc.Approve(adminCtx, created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	_, err = env.svc.Reject(adminCtx, leave.RejectLeaveRequest{ID: created.ID, Reason: "late"})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestCancelOwnPendingRequest(t *testing.T) {
	env := newLeaveTestEnv(t)
	created := applyTestLeave(t, env)

	ctx := contextWithClaims(t, testUserID, testEmployeeID)
	require.NoError(t, env.svc.Cancel(ctx, created.ID))

	_, err := env.repo.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
}

func TestCancelSomeoneElsesRequest(t *testing.T) {
	env := newLeaveTestEnv(t)
	created := applyTestLeave(t, env)

	otherCtx := contextWithClaims(t, adminUserID, "99999999-9999-9999-9999-999999999999")
	err := env.svc.Cancel(otherCtx, created.ID)
	assert.ErrorIs(t, err, leave.ErrNotRecordOwner)
}

func TestCancelDecidedRequest(t *testing.T) {
	env := newLeaveTestEnv(t)
	created := applyTestLeave(t, env)

	adminCtx := contextWithClaims(t, adminUserID, "")
	_, err := env.svc.Approve(adminCtx, created.ID)
	require.NoError(t, err)

	ctx := contextWithClaims(t, testUserID, testEmployeeID)
	err = env.svc.Cancel(ctx, created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}
