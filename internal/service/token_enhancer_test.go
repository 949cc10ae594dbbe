package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"catalog/internal/errors"
	"catalog/internal/model"
)

func TestTokenEnhancer_Enhance(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "alex@gmail.com").
		Return(&model.User{ID: 1, FirstName: "Alex", LastName: "Brown", Email: "alex@gmail.com"}, nil)

	enhancer := NewTokenEnhancer(mockRepo)
	claims, err := enhancer.Enhance(context.Background(), "alex@gmail.com")

	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims["userId"])
	assert.Equal(t, "Alex", claims["userFirstName"])
	assert.Equal(t, "Brown", claims["userLastName"])
	mockRepo.AssertExpectations(t)
}

func TestTokenEnhancer_UnknownSubjectFailsIssuance(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(nil, errors.ErrResourceNotFound)

	enhancer := NewTokenEnhancer(mockRepo)
	claims, err := enhancer.Enhance(context.Background(), "ghost@example.com")

	assert.ErrorIs(t, err, ErrUnknownSubject)
	assert.Nil(t, claims)
	mockRepo.AssertExpectations(t)
}
