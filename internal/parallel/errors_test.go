package parallel

import (
	"errors"
	"sync"
	"testing"
)

func TestErrorCollectorKeepsFirstError(t *testing.T) {
	t.Parallel()
	ec := &ErrorCollector{}
	first := errors.New("table build failed")
	second := errors.New("later failure")

	ec.SetError(nil)
	if ec.Err() != nil {
		t.Errorf("nil SetError should be ignored, got %v", ec.Err())
	}

	ec.SetError(first)
	ec.SetError(second)
	ec.SetError(nil)
	if ec.Err() != first {
		t.Errorf("Err() = %v, want the first error %v", ec.Err(), first)
	}
}

func TestErrorCollectorConcurrentSet(t *testing.T) {
	t.Parallel()
	ec := &ErrorCollector{}
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ec.SetError(errors.New("concurrent failure"))
		}()
	}
	close(start)
	wg.Wait()

	if ec.Err() == nil {
		t.Fatal("Expected a collected error, got nil")
	}
}

func TestErrorCollectorReset(t *testing.T) {
	t.Parallel()
	ec := &ErrorCollector{}
	ec.SetError(errors.New("stale"))
	ec.Reset()

	if ec.Err() != nil {
		t.Errorf("Err() after Reset = %v, want nil", ec.Err())
	}

	fresh := errors.New("fresh")
	ec.SetError(fresh)
	if ec.Err() != fresh {
		t.Errorf("Err() = %v, want %v after reset", ec.Err(), fresh)
	}
}
