package dedup

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/usdcrate/format"
)

func TestCacheLookupStore(t *testing.T) {
	cache := NewCache()
	fp := FingerprintInt32s([]int32{1, 2, 3})

	_, ok := cache.Lookup(fp, format.Int)
	require.False(t, ok)

	cache.Store(fp, format.Int, 128)
	off, ok := cache.Lookup(fp, format.Int)
	require.True(t, ok)
	require.EqualValues(t, 128, off)
}

func TestCacheDistinguishesByValueType(t *testing.T) {
	cache := NewCache()
	fp := FingerprintInt32s([]int32{7})
	cache.Store(fp, format.Int, 64)

	_, ok := cache.Lookup(fp, format.Float)
	require.False(t, ok)
}

func TestFingerprintVecsDVariesWithComponents(t *testing.T) {
	a := FingerprintVecsD([][]float64{{1, 2, 3}})
	b := FingerprintVecsD([][]float64{{1, 2, 4}})
	require.NotEqual(t, a, b)
}
