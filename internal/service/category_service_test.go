package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"catalog/internal/dto"
	"catalog/internal/errors"
	"catalog/internal/model"
)

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListPaged(ctx context.Context, req dto.PageRequest) ([]model.Category, int64, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCategoryService_FindByID(t *testing.T) {
	tests := []struct {
		name          string
		id            uint
		setupMock     func(*MockCategoryRepository)
		expectedError error
	}{
		{
			name: "existing id returns matching dto",
			id:   3,
			setupMock: func(m *MockCategoryRepository) {
				m.On("FindByID", mock.Anything, uint(3)).
					Return(&model.Category{ID: 3, Name: "Books"}, nil)
			},
		},
		{
			name: "missing id fails with not found",
			id:   99,
			setupMock: func(m *MockCategoryRepository) {
				m.On("FindByID", mock.Anything, uint(99)).
					Return(nil, errors.ErrResourceNotFound)
			},
			expectedError: errors.ErrResourceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCategoryRepository)
			tt.setupMock(mockRepo)

			service := NewCategoryService(mockRepo)
			out, err := service.FindByID(context.Background(), tt.id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, out)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, out.ID)
				assert.Equal(t, "Books", out.Name)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Insert(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Category).ID = 26
		}).
		Return(nil)

	service := NewCategoryService(mockRepo)
	// Client-supplied ids are ignored.
	out, err := service.Insert(context.Background(), dto.CategoryDTO{ID: 7, Name: "Electronics"})

	assert.NoError(t, err)
	assert.Equal(t, uint(26), out.ID)
	assert.Equal(t, "Electronics", out.Name)
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_Update(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	mockRepo.On("FindByID", mock.Anything, uint(2)).
		Return(&model.Category{ID: 2, Name: "Electronics"}, nil)
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(c *model.Category) bool {
		return c.ID == 2 && c.Name == "Home Electronics"
	})).Return(nil)

	service := NewCategoryService(mockRepo)
	out, err := service.Update(context.Background(), 2, dto.CategoryDTO{Name: "Home Electronics"})

	assert.NoError(t, err)
	assert.Equal(t, "Home Electronics", out.Name)
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_UpdateNotFound(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1000)).
		Return(nil, errors.ErrResourceNotFound)

	service := NewCategoryService(mockRepo)
	out, err := service.Update(context.Background(), 1000, dto.CategoryDTO{Name: "Anything"})

	assert.ErrorIs(t, err, errors.ErrResourceNotFound)
	assert.Nil(t, out)
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		id            uint
		repoError     error
		expectedError error
	}{
		{name: "existing id", id: 1},
		{name: "missing id", id: 99, repoError: errors.ErrResourceNotFound, expectedError: errors.ErrResourceNotFound},
		{name: "still referenced", id: 2, repoError: errors.ErrDatabaseIntegrity, expectedError: errors.ErrDatabaseIntegrity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCategoryRepository)
			mockRepo.On("Delete", mock.Anything, tt.id).Return(tt.repoError)

			service := NewCategoryService(mockRepo)
			err := service.Delete(context.Background(), tt.id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_FindAllPaged(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	req := dto.PageRequest{Page: 0, Size: 12, SortField: "name", SortDir: "asc"}
	mockRepo.On("ListPaged", mock.Anything, req).
		Return([]model.Category{{ID: 1, Name: "Books"}, {ID: 3, Name: "Computers"}}, int64(2), nil)

	service := NewCategoryService(mockRepo)
	page, err := service.FindAllPaged(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, "Books", page.Content[0].Name)
	mockRepo.AssertExpectations(t)
}
