// Code written by hand in the shape go.uber.org/mock/mockgen would
// generate for block.ChunkSource, since this module has no generated-
// mocks directory of its own yet.
package pool_test

import (
	"reflect"

	"go.uber.org/mock/gomock"
)

// MockChunkSource is a mock of the block.ChunkSource interface.
type MockChunkSource struct {
	ctrl     *gomock.Controller
	recorder *MockChunkSourceRecorder
}

// MockChunkSourceRecorder is the mock recorder for MockChunkSource.
type MockChunkSourceRecorder struct {
	mock *MockChunkSource
}

// NewMockChunkSource creates a new mock instance.
func NewMockChunkSource(ctrl *gomock.Controller) *MockChunkSource {
	mock := &MockChunkSource{ctrl: ctrl}
	mock.recorder = &MockChunkSourceRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockChunkSource) EXPECT() *MockChunkSourceRecorder {
	return m.recorder
}

// ObtainChunk mocks base method.
func (m *MockChunkSource) ObtainChunk(nBytes int) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ObtainChunk", nBytes)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ObtainChunk indicates an expected call of ObtainChunk.
func (mr *MockChunkSourceRecorder) ObtainChunk(nBytes interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ObtainChunk", reflect.TypeOf((*MockChunkSource)(nil).ObtainChunk), nBytes)
}
