package service_test

import (
	"context"
	"testing"
	"time"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type interviewFixture struct {
	slots    *MockInterviewRepo
	apps     *MockApplicationRepo
	users    *MockUserRepo
	cycles   *MockCycleRepo
	orgs     *MockOrganizationRepo
	notifier *recordingNotifier
	svc      service.InterviewService
}

func newInterviewFixture() *interviewFixture {
	f := &interviewFixture{
		slots:    new(MockInterviewRepo),
		apps:     new(MockApplicationRepo),
		users:    new(MockUserRepo),
		cycles:   new(MockCycleRepo),
		orgs:     new(MockOrganizationRepo),
		notifier: &recordingNotifier{},
	}
	f.svc = service.NewInterviewService(f.slots, f.apps, f.users, f.cycles, f.orgs, f.notifier, domain.TransitionPolicy{})
	return f
}

func TestInterviewService_ScheduleInterview(t *testing.T) {
	f := newInterviewFixture()
	start := time.Date(2026, 11, 2, 15, 0, 0, 0, time.UTC)
	slot := &domain.InterviewSlot{ID: 40, CycleID: 3, StartTime: start, EndTime: start.Add(30 * time.Minute), Location: "Room 101"}

	f.slots.On("GetSlot", mock.Anything, int32(40)).Return(slot, nil)
	f.apps.On("GetByID", mock.Anything, int32(55)).Return(&domain.Application{ID: 55, CandidateID: 7, CycleID: 3, Status: domain.ApplicationStatusUnderReview}, nil)
	f.slots.On("AssignSlot", mock.Anything, int32(40), int32(55)).Return(nil)
	f.apps.On("TransitionStatus", mock.Anything, int32(55), domain.ApplicationStatusInterview, int32(21), domain.TransitionPolicy{}).
		Return(&domain.StatusChange{OldStatus: domain.ApplicationStatusUnderReview, NewStatus: domain.ApplicationStatusInterview}, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(&domain.User{ID: 7, Email: "ada@example.com"}, nil)
	f.cycles.On("GetByID", mock.Anything, int32(3)).Return(openCycle(), nil)
	f.orgs.On("GetByID", mock.Anything, int32(1)).Return(&domain.Organization{ID: 1, Name: "Robotics"}, nil)

	booked, err := f.svc.ScheduleInterview(context.Background(), reviewerA, 40, 55)
	require.NoError(t, err)
	require.NotNil(t, booked.ApplicationID)
	assert.Equal(t, int32(55), *booked.ApplicationID)

	require.Len(t, f.notifier.events, 1)
	ev := f.notifier.events[0]
	assert.Equal(t, domain.EventInterviewScheduled, ev.Kind)
	assert.Equal(t, start, ev.At)
	assert.Equal(t, "Room 101", ev.Location)
	f.apps.AssertExpectations(t)
}

func TestInterviewService_ScheduleLaterStageKeepsStatus(t *testing.T) {
	f := newInterviewFixture()
	start := time.Now().Add(48 * time.Hour)
	f.slots.On("GetSlot", mock.Anything, int32(40)).Return(&domain.InterviewSlot{ID: 40, CycleID: 3, StartTime: start, EndTime: start.Add(time.Hour)}, nil)
	f.apps.On("GetByID", mock.Anything, int32(55)).Return(&domain.Application{ID: 55, CandidateID: 7, CycleID: 3, Status: domain.ApplicationStatusOffer}, nil)
	f.slots.On("AssignSlot", mock.Anything, int32(40), int32(55)).Return(nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(&domain.User{ID: 7}, nil)
	f.cycles.On("GetByID", mock.Anything, int32(3)).Return(openCycle(), nil)
	f.orgs.On("GetByID", mock.Anything, int32(1)).Return(&domain.Organization{ID: 1}, nil)

	_, err := f.svc.ScheduleInterview(context.Background(), reviewerA, 40, 55)
	require.NoError(t, err)
	f.apps.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInterviewService_ScheduleRejected(t *testing.T) {
	booked := int32(99)
	cases := []struct {
		name string
		slot *domain.InterviewSlot
		app  *domain.Application
		want error
	}{
		{"SlotTaken", &domain.InterviewSlot{ID: 40, CycleID: 3, ApplicationID: &booked}, nil, domain.ErrSlotTaken},
		{"OtherCycle", &domain.InterviewSlot{ID: 40, CycleID: 3}, &domain.Application{ID: 55, CycleID: 4, Status: domain.ApplicationStatusSubmitted}, domain.ErrInvalidArgument},
		{"Draft", &domain.InterviewSlot{ID: 40, CycleID: 3}, &domain.Application{ID: 55, CycleID: 3, Status: domain.ApplicationStatusDraft}, domain.ErrNotSubmitted},
		{"Terminal", &domain.InterviewSlot{ID: 40, CycleID: 3}, &domain.Application{ID: 55, CycleID: 3, Status: domain.ApplicationStatusRejected}, domain.ErrInvalidStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newInterviewFixture()
			f.slots.On("GetSlot", mock.Anything, int32(40)).Return(tc.slot, nil)
			if tc.app != nil {
				f.apps.On("GetByID", mock.Anything, int32(55)).Return(tc.app, nil)
			}
			_, err := f.svc.ScheduleInterview(context.Background(), reviewerA, 40, 55)
			assert.ErrorIs(t, err, tc.want)
			f.slots.AssertNotCalled(t, "AssignSlot", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestInterviewService_CreateSlot(t *testing.T) {
	f := newInterviewFixture()
	start := time.Now().Add(24 * time.Hour)

	err := f.svc.CreateSlot(context.Background(), reviewerA, &domain.InterviewSlot{CycleID: 3, StartTime: start, EndTime: start})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	err = f.svc.CreateSlot(context.Background(), candidate, &domain.InterviewSlot{CycleID: 3, StartTime: start, EndTime: start.Add(time.Hour)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	f.cycles.On("GetByID", mock.Anything, int32(3)).Return(openCycle(), nil)
	f.slots.On("CreateSlot", mock.Anything, mock.MatchedBy(func(s *domain.InterviewSlot) bool {
		return s.Location == "Lab" && s.ApplicationID == nil
	})).Return(nil)
	err = f.svc.CreateSlot(context.Background(), reviewerA, &domain.InterviewSlot{CycleID: 3, StartTime: start, EndTime: start.Add(time.Hour), Location: " Lab "})
	assert.NoError(t, err)
}
