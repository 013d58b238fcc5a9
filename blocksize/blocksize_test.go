package blocksize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistinctLengths(t *testing.T) {
	blobs := [][]byte{
		make([]byte, 32),
		make([]byte, 16),
		make([]byte, 32),
		make([]byte, 48),
		{},
	}

	require.Equal(t, []int{0, 16, 32, 48}, DistinctLengths(blobs))
	require.Empty(t, DistinctLengths(nil))
}

func TestGCD(t *testing.T) {
	require.Equal(t, 0, GCD(nil))
	require.Equal(t, 16, GCD([]int{16, 32, 48}))
	require.Equal(t, 20, GCD([]int{20, 40}))
	require.Equal(t, 4, GCD([]int{12, 16}))
	require.Equal(t, 7, GCD([]int{7}))
	// gcd(0, x) = x: a zero length does not constrain the fold.
	require.Equal(t, 16, GCD([]int{0, 16}))
}

func TestCommon(t *testing.T) {
	require.Equal(t, []int{8, 16}, Common([]int{16, 32, 48}))
	// 16 is excluded because 20 is not a multiple of it.
	require.Equal(t, []int{20}, Common([]int{20, 40}))
	require.Equal(t, []int{8}, Common([]int{8, 24}))
	require.Empty(t, Common([]int{13}))
	require.Equal(t, []int{8, 16, 20}, Common([]int{80, 160}))
}
