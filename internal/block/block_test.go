package block_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heaplab/heapcore/internal/block"
)

func TestNewChunkSingleFreeHeader(t *testing.T) {
	chunk, addr, err := block.NewChunk(block.OSChunkSource{}, 4096, block.BestFit)
	require.NoError(t, err)
	require.NotNil(t, chunk)

	h := block.AtAddr(addr)
	require.True(t, h.Free)
	require.Equal(t, block.BestFit, h.Strategy)
	require.Equal(t, uintptr(0), h.PhysPrev)
	require.False(t, h.HasNextPhysical())
	require.True(t, chunk.Contains(addr))
}

func TestHeaderPayloadRoundTrip(t *testing.T) {
	_, addr, err := block.NewChunk(block.OSChunkSource{}, 4096, block.BestFit)
	require.NoError(t, err)

	h := block.AtAddr(addr)
	payload := h.Payload()
	require.Equal(t, h, block.FromPayload(payload))
}

func TestFreeLinkAccessors(t *testing.T) {
	chunk1, addr1, err := block.NewChunk(block.OSChunkSource{}, 4096, block.BestFit)
	require.NoError(t, err)
	chunk2, addr2, err := block.NewChunk(block.OSChunkSource{}, 4096, block.BestFit)
	require.NoError(t, err)
	t.Cleanup(func() { _ = chunk1; _ = chunk2 })

	h1 := block.AtAddr(addr1)
	h2 := block.AtAddr(addr2)

	h1.SetFreeNext(h2)
	h2.SetFreePrev(h1)

	require.Equal(t, h2, h1.FreeNextHeader())
	require.Equal(t, h1, h2.FreePrevHeader())

	h1.SetFreeNext(nil)
	require.Nil(t, h1.FreeNextHeader())
}

func TestStrategyString(t *testing.T) {
	require.Equal(t, "BestFit", block.BestFit.String())
	require.Equal(t, "Segregated", block.Segregated.String())
	require.Equal(t, "Unknown", block.Strategy(99).String())
}

func TestChunkReinit(t *testing.T) {
	chunk, addr, err := block.NewChunk(block.OSChunkSource{}, 4096, block.BestFit)
	require.NoError(t, err)

	h := block.AtAddr(addr)
	h.Size = 16 // simulate having split the chunk's block down

	newAddr := chunk.Reinit(block.BestFit)
	require.Equal(t, addr, newAddr)
	require.Equal(t, chunk.Size, block.AtAddr(newAddr).Size)
}
