package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundleplan/internal/adapters/watcher"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var calls [][]string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			mu.Lock()
			calls = append(calls, paths)
			mu.Unlock()
		})

		d.Add("/project/.env")
		d.Add("/project/bundleplan.yaml")
		d.Add("/project/.env")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"/project/.env", "/project/bundleplan.yaml"}, calls[0])
	})
}

func TestDebouncer_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var count int

		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) {
			mu.Lock()
			count++
			mu.Unlock()
		})

		d.Add("/project/a.js")
		time.Sleep(50 * time.Millisecond)
		d.Add("/project/b.js")
		time.Sleep(50 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		assert.Equal(t, 0, count, "window restarts on every add")
		mu.Unlock()

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		assert.Equal(t, 1, count)
		mu.Unlock()
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls int
		var received []string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			calls++
			received = paths
		})

		d.Flush()
		assert.Equal(t, 0, calls, "empty flush does nothing")

		d.Add("/project/b.js")
		d.Add("/project/a.js")
		d.Flush()

		require.Equal(t, 1, calls)
		assert.Equal(t, []string{"/project/a.js", "/project/b.js"}, received)

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, 1, calls, "flushed paths do not fire again")
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)
		d.Add("/project/a.js")

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Flush()
	})
}
