package poolutil_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heaplab/heapcore/poolutil"
)

func TestAlignUpDown(t *testing.T) {
	require.Equal(t, uintptr(16), poolutil.AlignUp(uintptr(1), 16))
	require.Equal(t, uintptr(16), poolutil.AlignUp(uintptr(16), 16))
	require.Equal(t, uintptr(32), poolutil.AlignUp(uintptr(17), 16))

	require.Equal(t, uintptr(0), poolutil.AlignDown(uintptr(15), 16))
	require.Equal(t, uintptr(16), poolutil.AlignDown(uintptr(31), 16))
}

func TestCheckPow2(t *testing.T) {
	require.NoError(t, poolutil.CheckPow2(uintptr(64), "alignment"))
	require.Error(t, poolutil.CheckPow2(uintptr(63), "alignment"))
	require.Error(t, poolutil.CheckPow2(uintptr(0), "alignment"))
}
