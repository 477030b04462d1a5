package resource

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(50))
	assert.Equal(t, int64(50), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(40))
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Acquire 20 (should fail - limit exceeded)
	assert.ErrorIs(t, c.AcquireMemory(20), ErrMemoryLimitExceeded)
	assert.Equal(t, int64(90), c.MemoryUsage())

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(20))
	assert.Equal(t, int64(60), c.MemoryUsage())
	assert.Equal(t, int64(100), c.MemoryLimit())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(1000))
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(0))
	c.ReleaseMemory(-1)
	assert.Equal(t, int64(500), c.MemoryUsage())
}

func TestController_Workers(t *testing.T) {
	want := min(DefaultWorkers, runtime.GOMAXPROCS(0))
	assert.Equal(t, want, NewController(Config{}).Workers())
	assert.Equal(t, 3, NewController(Config{MaxWorkers: 3}).Workers())
	assert.Equal(t, 64, NewController(Config{MaxWorkers: 64}).Workers())

	t.Run("BoundedByGOMAXPROCS", func(t *testing.T) {
		prev := runtime.GOMAXPROCS(2)
		defer runtime.GOMAXPROCS(prev)

		assert.Equal(t, 2, NewController(Config{}).Workers())

		var c *Controller
		assert.Equal(t, 2, c.Workers())
	})
}

func TestController_Progress(t *testing.T) {
	c := NewController(Config{ProgressPerSecond: 0.001})
	assert.True(t, c.AllowProgress(), "burst of one")
	assert.False(t, c.AllowProgress())

	assert.True(t, NewController(Config{}).AllowProgress())
}

func TestController_Nil(t *testing.T) {
	var c *Controller
	require.NoError(t, c.AcquireMemory(1<<40))
	c.ReleaseMemory(1 << 40)
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())
	assert.Equal(t, min(DefaultWorkers, runtime.GOMAXPROCS(0)), c.Workers())
	assert.True(t, c.AllowProgress())
}
