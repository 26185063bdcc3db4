package service_test

import (
	"context"
	"io"
	"sync"
	"time"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/security"
	"recruiting-portal-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateResume(ctx context.Context, userID int32, url, key string) error {
	args := m.Called(ctx, userID, url, key)
	return args.Error(0)
}
func (m *MockUserRepo) AddOrgMember(ctx context.Context, member *domain.OrgMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockUserRepo) ListOrgReviewers(ctx context.Context, orgID int32) ([]domain.User, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockOrganizationRepo
type MockOrganizationRepo struct {
	mock.Mock
}

func (m *MockOrganizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganizationRepo) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) List(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) CreateSubteam(ctx context.Context, subteam *domain.Subteam) error {
	args := m.Called(ctx, subteam)
	return args.Error(0)
}
func (m *MockOrganizationRepo) GetSubteam(ctx context.Context, id int32) (*domain.Subteam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subteam), args.Error(1)
}

// MockCycleRepo
type MockCycleRepo struct {
	mock.Mock
}

func (m *MockCycleRepo) Create(ctx context.Context, cycle *domain.RecruitingCycle) error {
	args := m.Called(ctx, cycle)
	return args.Error(0)
}
func (m *MockCycleRepo) GetByID(ctx context.Context, id int32) (*domain.RecruitingCycle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecruitingCycle), args.Error(1)
}
func (m *MockCycleRepo) GetActiveByOrg(ctx context.Context, orgID int32) (*domain.RecruitingCycle, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecruitingCycle), args.Error(1)
}
func (m *MockCycleRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.RecruitingCycle, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.RecruitingCycle), args.Error(1)
}
func (m *MockCycleRepo) ListActive(ctx context.Context) ([]domain.RecruitingCycle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RecruitingCycle), args.Error(1)
}
func (m *MockCycleRepo) UpdateTimeline(ctx context.Context, id int32, timeline domain.CycleTimeline) error {
	args := m.Called(ctx, id, timeline)
	return args.Error(0)
}
func (m *MockCycleRepo) Activate(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockQuestionRepo
type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) Insert(ctx context.Context, q *domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}
func (m *MockQuestionRepo) GetByID(ctx context.Context, id int32) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}
func (m *MockQuestionRepo) ListByCycle(ctx context.Context, cycleID int32) ([]domain.Question, error) {
	args := m.Called(ctx, cycleID)
	return args.Get(0).([]domain.Question), args.Error(1)
}
func (m *MockQuestionRepo) UpdateContent(ctx context.Context, id int32, content domain.QuestionContent) error {
	args := m.Called(ctx, id, content)
	return args.Error(0)
}
func (m *MockQuestionRepo) Remove(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockQuestionRepo) Move(ctx context.Context, id, target int32) (int32, error) {
	args := m.Called(ctx, id, target)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockQuestionRepo) Repack(ctx context.Context, scope domain.QuestionScope) (int, error) {
	args := m.Called(ctx, scope)
	return args.Int(0), args.Error(1)
}

// MockApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) GetOrCreateDraft(ctx context.Context, candidateID, cycleID int32) (*domain.Application, error) {
	args := m.Called(ctx, candidateID, cycleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListResponses(ctx context.Context, applicationID int32) ([]domain.Response, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]domain.Response), args.Error(1)
}
func (m *MockApplicationRepo) ListByCandidate(ctx context.Context, candidateID int32) ([]domain.Application, error) {
	args := m.Called(ctx, candidateID)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListByCycle(ctx context.Context, cycleID int32, statuses []domain.ApplicationStatus) ([]domain.Application, error) {
	args := m.Called(ctx, cycleID, statuses)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) CountByStatus(ctx context.Context, cycleID int32) (map[domain.ApplicationStatus]int32, error) {
	args := m.Called(ctx, cycleID)
	return args.Get(0).(map[domain.ApplicationStatus]int32), args.Error(1)
}
func (m *MockApplicationRepo) SaveDraft(ctx context.Context, app *domain.Application, responses []domain.Response) error {
	args := m.Called(ctx, app, responses)
	return args.Error(0)
}
func (m *MockApplicationRepo) Submit(ctx context.Context, id int32, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
func (m *MockApplicationRepo) TransitionStatus(ctx context.Context, id int32, to domain.ApplicationStatus, changedBy int32, policy domain.TransitionPolicy) (*domain.StatusChange, error) {
	args := m.Called(ctx, id, to, changedBy, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusChange), args.Error(1)
}
func (m *MockApplicationRepo) ListStatusHistory(ctx context.Context, id int32) ([]domain.StatusChange, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.StatusChange), args.Error(1)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) UpsertScore(ctx context.Context, score *domain.Score) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}
func (m *MockReviewRepo) ListScores(ctx context.Context, applicationID int32) ([]domain.Score, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]domain.Score), args.Error(1)
}
func (m *MockReviewRepo) ListScoreValuesByCycle(ctx context.Context, cycleID int32) (map[int32][]int32, error) {
	args := m.Called(ctx, cycleID)
	return args.Get(0).(map[int32][]int32), args.Error(1)
}
func (m *MockReviewRepo) CreateNote(ctx context.Context, note *domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockReviewRepo) GetNote(ctx context.Context, id int32) (*domain.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}
func (m *MockReviewRepo) DeleteNote(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockReviewRepo) ListNotes(ctx context.Context, applicationID int32) ([]domain.Note, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]domain.Note), args.Error(1)
}

// MockInterviewRepo
type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) CreateSlot(ctx context.Context, slot *domain.InterviewSlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}
func (m *MockInterviewRepo) GetSlot(ctx context.Context, id int32) (*domain.InterviewSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewSlot), args.Error(1)
}
func (m *MockInterviewRepo) ListSlots(ctx context.Context, cycleID int32) ([]domain.InterviewSlot, error) {
	args := m.Called(ctx, cycleID)
	return args.Get(0).([]domain.InterviewSlot), args.Error(1)
}
func (m *MockInterviewRepo) AssignSlot(ctx context.Context, slotID, applicationID int32) error {
	args := m.Called(ctx, slotID, applicationID)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockLimiter
type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Error(1)
}
func (m *MockObjectStore) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Error(1)
}
func (m *MockObjectStore) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}
func (m *MockObjectStore) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockObjectStore) SaveFile(key string, reader io.Reader) error {
	args := m.Called(key, reader)
	return args.Error(0)
}
func (m *MockObjectStore) ReadFile(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID int32, email string, role domain.UserRole) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(token string) (*security.UserClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}

// recordingNotifier keeps every event it is handed.
type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.Event
}

func (n *recordingNotifier) Notify(ctx context.Context, ev domain.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) kinds() []domain.EventKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.EventKind, len(n.events))
	for i, ev := range n.events {
		out[i] = ev.Kind
	}
	return out
}

// fakeSender fails the first failures calls, then succeeds.
type fakeSender struct {
	mu       sync.Mutex
	failures int
	calls    int
	sent     []service.EmailMessage
}

func (f *fakeSender) Send(ctx context.Context, msg service.EmailMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return context.DeadlineExceeded
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) snapshot() (int, []service.EmailMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, append([]service.EmailMessage(nil), f.sent...)
}

func int32Ptr(v int32) *int32 { return &v }

var (
	candidate = domain.Caller{UserID: 7, Role: domain.UserRoleCandidate}
	reviewerA = domain.Caller{UserID: 21, Role: domain.UserRoleReviewer}
	reviewerB = domain.Caller{UserID: 22, Role: domain.UserRoleReviewer}
)
