package perf_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optrack/optrack/perf"
)

func TestParseWindow(t *testing.T) {
	for _, s := range []string{"1d", "1w", "1m", "all", ""} {
		_, err := perf.ParseWindow(s)
		assert.NoError(t, err, s)
	}

	_, err := perf.ParseWindow("3y")
	assert.Error(t, err)
}

func TestResolvePresets(t *testing.T) {
	ref := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		preset    string
		wantStart time.Time
	}{
		{"1d", ref.AddDate(0, 0, -1)},
		{"1w", ref.AddDate(0, 0, -7)},
		{"1m", ref.AddDate(0, -1, 0)},
	}

	for _, tc := range cases {
		t.Run(tc.preset, func(t *testing.T) {
			w, err := perf.ParseWindow(tc.preset)
			require.NoError(t, err)

			start, end, bounded := w.Resolve(ref)
			assert.True(t, bounded)
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, ref, end)
		})
	}
}

func TestResolveAllIsUnbounded(t *testing.T) {
	w, err := perf.ParseWindow("all")
	require.NoError(t, err)

	_, _, bounded := w.Resolve(time.Now())
	assert.False(t, bounded)
}

func TestResolveExplicitRange(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	gotStart, gotEnd, bounded := perf.Range(start, end).Resolve(time.Now())
	assert.True(t, bounded)
	assert.Equal(t, start, gotStart)
	assert.Equal(t, end, gotEnd)
}
