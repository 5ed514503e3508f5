package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockOrganizer struct {
	mock.Mock
}

func (m *MockOrganizer) Organize(ctx context.Context, source, fileName string) (string, error) {
	args := m.Called(ctx, source, fileName)
	return args.String(0), args.Error(1)
}
