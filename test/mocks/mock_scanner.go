package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockScanner struct {
	mock.Mock
}

func (m *MockScanner) ScanDirectory(ctx context.Context, root string) ([]string, error) {
	args := m.Called(ctx, root)
	if args.Get(0) != nil {
		return args.Get(0).([]string), args.Error(1)
	}
	return nil, args.Error(1)
}
