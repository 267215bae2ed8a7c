package leaktest

import (
	"sync"
	"testing"
	"time"
)

func TestGoroutineCheckerCleanExit(t *testing.T) {
	checker := NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(5 * time.Millisecond)
		}()
	}
	wg.Wait()

	checker.Check(0)
}

func TestGoroutineCheckerTolerance(t *testing.T) {
	checker := NewGoroutineChecker(t)

	done := make(chan struct{})
	go func() {
		<-done
	}()
	defer close(done)

	// One intentionally lingering goroutine stays within tolerance
	checker.Check(1)
}
