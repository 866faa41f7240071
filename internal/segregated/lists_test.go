package segregated_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heaplab/heapcore/internal/block"
	"github.com/heaplab/heapcore/internal/segregated"
)

func TestClassIndex(t *testing.T) {
	l := segregated.New(segregated.DefaultClassSizes)

	idx, ok := l.ClassIndex(300)
	require.True(t, ok)
	require.Equal(t, uintptr(512), l.ClassSizes()[idx])

	_, ok = l.ClassIndex(5000)
	require.False(t, ok)
}

func TestPushPopLIFO(t *testing.T) {
	l := segregated.New(segregated.DefaultClassSizes)
	classIdx := 0
	classSize := l.ClassSizes()[classIdx]

	chunk, firstAddr, err := block.NewChunk(block.OSChunkSource{}, 4096, block.Segregated)
	require.NoError(t, err)
	_ = chunk

	stride := block.HeaderSize + classSize
	a := block.Init(firstAddr, classSize, firstAddr+2*stride, 0, block.Segregated)
	b := block.Init(firstAddr+stride, classSize, firstAddr+2*stride, firstAddr, block.Segregated)

	require.True(t, l.Empty(classIdx))
	l.Push(classIdx, a)
	l.Push(classIdx, b)
	require.False(t, l.Empty(classIdx))

	require.Equal(t, b.Addr(), l.Pop(classIdx).Addr())
	require.Equal(t, a.Addr(), l.Pop(classIdx).Addr())
	require.True(t, l.Empty(classIdx))
	require.Nil(t, l.Pop(classIdx))
}

func TestValidateRejectsWrongSize(t *testing.T) {
	l := segregated.New(segregated.DefaultClassSizes)
	chunk, addr, err := block.NewChunk(block.OSChunkSource{}, 4096, block.Segregated)
	require.NoError(t, err)
	_ = chunk

	h := block.Init(addr, 999, addr+block.HeaderSize+999, 0, block.Segregated)
	l.Push(0, h)

	require.Error(t, l.Validate())
}
