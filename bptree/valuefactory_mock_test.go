// Hand-written mock in the style of MockGen output.
// Source: ValueFactory[string, string, int] (github.com/MkazemAkhgary/bplustree/bptree)

package bptree

import (
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"
)

// MockStringValueFactory is a mock of the ValueFactory[string, string, int]
// instantiation used by AddOrUpdateFromFactory's tests.
type MockStringValueFactory struct {
	ctrl     *gomock.Controller
	recorder *MockStringValueFactoryMockRecorder
}

// MockStringValueFactoryMockRecorder is the mock recorder for MockStringValueFactory.
type MockStringValueFactoryMockRecorder struct {
	mock *MockStringValueFactory
}

// NewMockStringValueFactory creates a new mock instance.
func NewMockStringValueFactory(ctrl *gomock.Controller) *MockStringValueFactory {
	mock := &MockStringValueFactory{ctrl: ctrl}
	mock.recorder = &MockStringValueFactoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStringValueFactory) EXPECT() *MockStringValueFactoryMockRecorder {
	return m.recorder
}

// Add mocks base method.
func (m *MockStringValueFactory) Add(key string, arg int) string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Add", key, arg)
	ret0, _ := ret[0].(string)
	return ret0
}

// Add indicates an expected call of Add.
func (mr *MockStringValueFactoryMockRecorder) Add(key, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Add", reflect.TypeOf((*MockStringValueFactory)(nil).Add), key, arg)
}

// Update mocks base method.
func (m *MockStringValueFactory) Update(key string, arg int, old string) string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", key, arg, old)
	ret0, _ := ret[0].(string)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockStringValueFactoryMockRecorder) Update(key, arg, old any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockStringValueFactory)(nil).Update), key, arg, old)
}
