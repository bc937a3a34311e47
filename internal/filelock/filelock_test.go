package filelock

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_SerializesHolders(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	first, err := Acquire(path)
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		acquired = make(chan time.Time, 1)
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		second, err := Acquire(path)
		if err != nil {
			return
		}
		acquired <- time.Now()
		_ = second.Release()
	}()

	time.Sleep(50 * time.Millisecond)
	released := time.Now()
	require.NoError(t, first.Release())
	wg.Wait()

	select {
	case at := <-acquired:
		assert.False(t, at.Before(released), "second holder got the lock before the first released it")
	default:
		t.Fatal("second holder never acquired the lock")
	}
}
