// Package mocks provides test doubles for the routes client.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	routes "github.com/eneda8/nearby/pkg/routes"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// ComputeRouteMatrix provides a mock function with given fields: ctx, req
func (_m *MockClient) ComputeRouteMatrix(ctx context.Context, req routes.MatrixRequest) ([]routes.MatrixElement, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for ComputeRouteMatrix")
	}

	var r0 []routes.MatrixElement
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, routes.MatrixRequest) ([]routes.MatrixElement, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, routes.MatrixRequest) []routes.MatrixElement); ok {
		r0 = rf(ctx, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]routes.MatrixElement)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, routes.MatrixRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
