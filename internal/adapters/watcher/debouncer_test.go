package watcher_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodalhq/nodal/internal/adapters/watcher"
)

type collector struct {
	mu      sync.Mutex
	batches [][]string
}

func (c *collector) collect(paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, paths)
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.batches)
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var c collector
	d := watcher.NewDebouncer(20*time.Millisecond, c.collect)

	d.Add("/scene/a.usda")
	d.Add("/scene/a.usda")
	d.Add("/scene/b.usda")

	require.Eventually(t, func() bool { return c.count() == 1 }, time.Second, 5*time.Millisecond)

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Len(t, c.batches[0], 2, "duplicate paths must be deduplicated")
	assert.ElementsMatch(t, []string{"/scene/a.usda", "/scene/b.usda"}, c.batches[0])
}

func TestDebouncer_FlushDeliversPending(t *testing.T) {
	var c collector
	d := watcher.NewDebouncer(time.Hour, c.collect)

	d.Add("/scene/a.usda")
	d.Flush()

	assert.Equal(t, 1, c.count(), "flush must deliver synchronously")
}

func TestDebouncer_FlushEmpty(t *testing.T) {
	var c collector
	d := watcher.NewDebouncer(time.Hour, c.collect)

	d.Flush()

	assert.Zero(t, c.count())
}
