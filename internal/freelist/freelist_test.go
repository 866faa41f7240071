package freelist_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heaplab/heapcore/internal/block"
	"github.com/heaplab/heapcore/internal/freelist"
)

// makeBlocks carves n fixed-stride headers out of one chunk so their
// addresses are in a known, increasing order, returning them low to
// high address along with the chunk keeping them alive.
func makeBlocks(t *testing.T, n int) (*block.Chunk, []*block.Header) {
	t.Helper()
	const payload = 64
	stride := block.HeaderSize + payload
	chunk, firstAddr, err := block.NewChunk(block.OSChunkSource{}, int(stride)*n+4096, block.BestFit)
	require.NoError(t, err)

	headers := make([]*block.Header, 0, n)
	addr := firstAddr
	var prev uintptr
	for i := 0; i < n; i++ {
		h := block.Init(addr, payload, chunk.End(), prev, block.BestFit)
		headers = append(headers, h)
		prev = addr
		addr += stride
	}
	return chunk, headers
}

func TestInsertKeepsAddressOrder(t *testing.T) {
	chunk, headers := makeBlocks(t, 4)
	_ = chunk

	var l freelist.List
	// Insert out of order.
	l.Insert(headers[2])
	l.Insert(headers[0])
	l.Insert(headers[3])
	l.Insert(headers[1])

	require.NoError(t, l.Validate())

	cur := l.Head()
	for i := 0; i < 4; i++ {
		require.Equal(t, headers[i].Addr(), cur.Addr())
		cur = cur.FreeNextHeader()
	}
	require.Nil(t, cur)
}

func TestRemoveMiddle(t *testing.T) {
	chunk, headers := makeBlocks(t, 3)
	_ = chunk

	var l freelist.List
	l.Insert(headers[0])
	l.Insert(headers[1])
	l.Insert(headers[2])

	l.Remove(headers[1])
	require.NoError(t, l.Validate())

	require.Equal(t, headers[0].Addr(), l.Head().Addr())
	require.Equal(t, headers[2].Addr(), l.Head().FreeNextHeader().Addr())
	require.Nil(t, headers[2].FreeNextHeader())
}

func TestRemoveHeadAndTail(t *testing.T) {
	chunk, headers := makeBlocks(t, 2)
	_ = chunk

	var l freelist.List
	l.Insert(headers[0])
	l.Insert(headers[1])

	l.Remove(headers[0])
	require.Equal(t, headers[1].Addr(), l.Head().Addr())

	l.Remove(headers[1])
	require.Nil(t, l.Head())
}
