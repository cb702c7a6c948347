package common

import (
	"sync"
	"testing"
)

func TestSafeGoRecoversPanic(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)

	before := GetGoroutineCount()

	SafeGo(nil, "panicking", func() {
		defer wg.Done()
		panic("boom")
	})
	SafeGo(nil, "normal", func() {
		defer wg.Done()
	})

	wg.Wait()

	if got := GetGoroutineCount() - before; got != 2 {
		t.Errorf("goroutine counter advanced by %d, want 2", got)
	}
}
