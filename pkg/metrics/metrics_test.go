package metrics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mininotes/pkg/metrics"
)

type fixedSizer struct {
	size int64
	err  error
}

func (f fixedSizer) DirectorySizeBytes(ctx context.Context) (int64, error) {
	return f.size, f.err
}

func TestMeasure(t *testing.T) {
	r, err := metrics.Measure(func() (int, error) {
		time.Sleep(2 * time.Millisecond)
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, r.Data)
	assert.GreaterOrEqual(t, r.Ms, 2.0)
}

func TestMeasure_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := metrics.Measure(func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
}

func TestFootprint(t *testing.T) {
	fp, err := metrics.Footprint(context.Background(), fixedSizer{size: 128})
	require.NoError(t, err)
	assert.Equal(t, int64(128), fp.DataBytes)
	if assert.NotNil(t, fp.AppBytes) {
		assert.Positive(t, *fp.AppBytes)
	}

	_, err = metrics.Footprint(context.Background(), fixedSizer{err: errors.New("denied")})
	assert.Error(t, err)
}

func TestMemoryUsage(t *testing.T) {
	m := metrics.MemoryUsage()
	assert.Positive(t, m.Sys)
	assert.Positive(t, m.HeapAlloc)
}
