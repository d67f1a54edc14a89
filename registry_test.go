package infcounter

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryCapacity(t *testing.T) {
	for qty := 0; qty <= MaxCounters; qty++ {
		pids := make([]PID, qty)
		for i := range pids {
			pids[i] = PID(100 + i)
		}
		r, err := NewRegistry(pids)
		require.NoError(t, err)
		require.Equal(t, qty, r.Len())
	}

	_, err := NewRegistry([]PID{1, 2, 3, 4, 5, 6})
	require.Equal(t, ErrRegistryCapacity, errors.Cause(err))
}

func TestRegistryCopiesInput(t *testing.T) {
	pids := []PID{111, 222}
	r, err := NewRegistry(pids)
	require.NoError(t, err)
	pids[0] = 999

	got, err := r.At(1)
	require.NoError(t, err)
	require.Equal(t, PID(111), got)
}

func TestRegistryAtBounds(t *testing.T) {
	r, err := NewRegistry([]PID{111, 222, 333})
	require.NoError(t, err)

	for i, want := range []PID{111, 222, 333} {
		got, err := r.At(i + 1)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	for _, index := range []int{-1, 0, 4, 100} {
		_, err := r.At(index)
		require.Equal(t, ErrNoSuchEntry, errors.Cause(err), "index %d", index)
	}
}

func TestRegistryRemovePreservesOrder(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []PID
	}{
		{"first", 1, []PID{222, 333, 444, 555}},
		{"middle", 3, []PID{111, 222, 444, 555}},
		{"last", 5, []PID{111, 222, 333, 444}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRegistry([]PID{111, 222, 333, 444, 555})
			require.NoError(t, err)

			_, err = r.Remove(tc.index)
			require.NoError(t, err)
			require.Equal(t, tc.want, r.PIDs())
			require.Equal(t, 4, r.Len())
			require.Equal(t, 4, cap(r.pids))
		})
	}
}

func TestRegistryRemoveUntilEmpty(t *testing.T) {
	r, err := NewRegistry([]PID{111, 222})
	require.NoError(t, err)

	removed, err := r.Remove(2)
	require.NoError(t, err)
	require.Equal(t, PID(222), removed)
	removed, err = r.Remove(1)
	require.NoError(t, err)
	require.Equal(t, PID(111), removed)
	require.Equal(t, 0, r.Len())

	_, err = r.Remove(1)
	require.Equal(t, ErrNoSuchEntry, errors.Cause(err))
}

func TestRegistryWriteTo(t *testing.T) {
	r, err := NewRegistry([]PID{111, 222})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, "1) 111\n2) 222\n", buf.String())
	require.Equal(t, int64(buf.Len()), n)
}
