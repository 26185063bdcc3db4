package service_test

import (
	"context"
	"testing"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_InsertQuestion(t *testing.T) {
	questions := new(MockQuestionRepo)
	cycles := new(MockCycleRepo)
	orgs := new(MockOrganizationRepo)
	svc := service.NewCatalogService(questions, cycles, orgs)
	ctx := context.Background()

	cycles.On("GetByID", mock.Anything, int32(3)).Return(openCycle(), nil)
	questions.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Question")).Run(func(args mock.Arguments) {
		q := args.Get(1).(*domain.Question)
		q.ID, q.Order = 101, 2
	}).Return(nil).Once()

	q := &domain.Question{CycleID: 3, Prompt: "Why us?", Type: domain.QuestionTypeShortText}
	require.NoError(t, svc.InsertQuestion(ctx, q))
	assert.Equal(t, int32(2), q.Order)

	t.Run("InvalidContent", func(t *testing.T) {
		err := svc.InsertQuestion(ctx, &domain.Question{CycleID: 3, Prompt: "Pick", Type: domain.QuestionTypeSelect})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("SubteamOfOtherOrg", func(t *testing.T) {
		orgs.On("GetSubteam", mock.Anything, int32(9)).Return(&domain.Subteam{ID: 9, OrgID: 2}, nil)
		err := svc.InsertQuestion(ctx, &domain.Question{CycleID: 3, SubteamID: int32Ptr(9), Prompt: "Stack?", Type: domain.QuestionTypeShortText})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
	questions.AssertNumberOfCalls(t, "Insert", 1)
}

func TestCatalogService_UpdateQuestionKeepsOrder(t *testing.T) {
	questions := new(MockQuestionRepo)
	svc := service.NewCatalogService(questions, nil, nil)
	ctx := context.Background()
	existing := &domain.Question{ID: 101, CycleID: 3, Prompt: "Old", Type: domain.QuestionTypeShortText, Order: 4}
	content := domain.QuestionContent{Prompt: "New", Type: domain.QuestionTypeLongText, IsRequired: true}
	updated := &domain.Question{ID: 101, CycleID: 3, Prompt: "New", Type: domain.QuestionTypeLongText, IsRequired: true, Order: 4}

	questions.On("GetByID", mock.Anything, int32(101)).Return(existing, nil).Once()
	questions.On("UpdateContent", mock.Anything, int32(101), content).Return(nil)
	questions.On("GetByID", mock.Anything, int32(101)).Return(updated, nil).Once()

	q, err := svc.UpdateQuestion(ctx, 101, content)
	require.NoError(t, err)
	assert.Equal(t, int32(4), q.Order)
	assert.Equal(t, "New", q.Prompt)
	questions.AssertNotCalled(t, "Move", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogService_MoveAndRemove(t *testing.T) {
	questions := new(MockQuestionRepo)
	svc := service.NewCatalogService(questions, nil, nil)
	ctx := context.Background()

	questions.On("Move", mock.Anything, int32(102), int32(99)).Return(int32(2), nil)
	landed, err := svc.MoveQuestion(ctx, 102, 99)
	require.NoError(t, err)
	assert.Equal(t, int32(2), landed)

	questions.On("Remove", mock.Anything, int32(404)).Return(domain.ErrNotFound)
	assert.ErrorIs(t, svc.RemoveQuestion(ctx, 404), domain.ErrNotFound)
}

func TestCatalogService_VisibleQuestions(t *testing.T) {
	questions := new(MockQuestionRepo)
	svc := service.NewCatalogService(questions, nil, nil)
	questions.On("ListByCycle", mock.Anything, int32(3)).Return([]domain.Question{
		{ID: 1, Order: 0},
		{ID: 2, Order: 1},
		{ID: 3, SubteamID: int32Ptr(9), Order: 0},
		{ID: 4, SubteamID: int32Ptr(10), Order: 0},
	}, nil)

	visible, err := svc.VisibleQuestions(context.Background(), 3, int32Ptr(9))
	require.NoError(t, err)
	ids := []int32{}
	for _, q := range visible {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []int32{1, 2, 3}, ids)
}

func TestCatalogService_RepackQuestions(t *testing.T) {
	questions := new(MockQuestionRepo)
	cycles := new(MockCycleRepo)
	svc := service.NewCatalogService(questions, cycles, nil)
	ctx := context.Background()

	cycles.On("GetByID", mock.Anything, int32(3)).Return(openCycle(), nil)
	questions.On("Repack", mock.Anything, domain.QuestionScope{CycleID: 3, SubteamID: int32Ptr(4)}).Return(2, nil)

	moved, err := svc.RepackQuestions(ctx, 3, int32Ptr(4))
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	t.Run("UnknownCycle", func(t *testing.T) {
		cycles.On("GetByID", mock.Anything, int32(99)).Return(nil, domain.ErrNotFound)
		_, err := svc.RepackQuestions(ctx, 99, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
