package example

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ameise84/once"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var buildTag once.Cell[string]

func TestCellPackageLevel(t *testing.T) {
	p, err := buildTag.GetOrInit(func() string { return "v1" })
	require.NoError(t, err)
	assert.Equal(t, "v1", *p)
	assert.Equal(t, "v1", *buildTag.Get())
}

func TestCellInitializeScenario(t *testing.T) {
	var cell once.Cell[uint32]

	_, ok := cell.TryGet()
	require.False(t, ok)

	require.NoError(t, cell.Initialize(7))

	p, ok := cell.TryGet()
	require.True(t, ok)
	assert.Equal(t, uint32(7), *p)

	err := cell.Initialize(9)
	var already *once.AlreadyInitializedError
	require.ErrorAs(t, err, &already)

	assert.Equal(t, uint32(7), *cell.Get())
}

func TestCellGetBeforeInitializePanics(t *testing.T) {
	var cell once.Cell[uint32]
	assert.Panics(t, func() { cell.Get() })
}

func TestCellGetOrInitRunsInitializerOnce(t *testing.T) {
	var cell once.Cell[int]
	counter := 0
	for i := 0; i < 3; i++ {
		p, err := cell.GetOrInit(func() int { counter++; return counter })
		require.NoError(t, err)
		assert.Equal(t, 1, *p)
	}
	assert.Equal(t, 1, counter)

	// a different initializer must not run either
	p, err := cell.GetOrInit(func() int { return 42 })
	require.NoError(t, err)
	assert.Equal(t, 1, *p)
}

func TestCellReentrantInitializePanics(t *testing.T) {
	var cell once.Cell[int]
	assert.Panics(t, func() {
		_, _ = cell.GetOrInit(func() int {
			_ = cell.Initialize(1)
			return 1
		})
	})
}

func TestCellReentrantGetOrInitPanics(t *testing.T) {
	var cell once.Cell[int]
	assert.Panics(t, func() {
		_, _ = cell.GetOrInit(func() int {
			_, _ = cell.GetOrInit(func() int { return 1 })
			return 1
		})
	})
}

func TestCellConcurrentGetOrInit(t *testing.T) {
	const goroutines = 16
	for round := 0; round < 50; round++ {
		var cell once.Cell[int]
		var inits atomic.Int32
		start := make(chan struct{})
		results := make(chan int, goroutines)
		wg := sync.WaitGroup{}
		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			go func() {
				defer wg.Done()
				<-start
				for {
					p, err := cell.GetOrInit(func() int {
						inits.Add(1)
						return 7
					})
					if err == nil {
						results <- *p
						return
					}
					// contended, retry
					runtime.Gosched()
				}
			}()
		}
		close(start)
		wg.Wait()
		close(results)
		require.Equal(t, int32(1), inits.Load())
		for v := range results {
			require.Equal(t, 7, v)
		}
		require.Equal(t, 7, *cell.Get())
	}
}

func TestCellConcurrentInitializeAndGetOrInit(t *testing.T) {
	const goroutines = 16
	for round := 0; round < 50; round++ {
		var cell once.Cell[int]
		var populated atomic.Int32
		start := make(chan struct{})
		wg := sync.WaitGroup{}
		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			i := i
			go func() {
				defer wg.Done()
				<-start
				for {
					if i%2 == 0 {
						err := cell.Initialize(i)
						if err == nil {
							populated.Add(1)
							return
						}
						var already *once.AlreadyInitializedError
						if errors.As(err, &already) {
							return
						}
					} else {
						_, err := cell.GetOrInit(func() int {
							populated.Add(1)
							return i
						})
						if err == nil {
							return
						}
					}
					// contended, retry
					runtime.Gosched()
				}
			}()
		}
		close(start)
		wg.Wait()
		require.Equal(t, int32(1), populated.Load())
		p, ok := cell.TryGet()
		require.True(t, ok)
		require.Equal(t, *cell.Get(), *p)
	}
}

func TestCellContention(t *testing.T) {
	var cell once.Cell[int]
	entered := make(chan struct{})
	unblock := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = cell.GetOrInit(func() int {
			close(entered)
			<-unblock
			return 7
		})
	}()
	<-entered

	// the initializing goroutine holds the flag
	_, ok := cell.TryGet()
	assert.False(t, ok)

	var contended *once.ContentionError
	err := cell.Initialize(9)
	require.ErrorAs(t, err, &contended)

	_, err = cell.GetOrInit(func() int { return 9 })
	require.ErrorAs(t, err, &contended)

	close(unblock)
	<-done
	assert.Equal(t, 7, *cell.Get())
}
