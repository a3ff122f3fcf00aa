package parallel

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestPool(t *testing.T, workers int) *WorkerPool {
	t.Helper()

	pool, err := NewWorkerPool(workers)
	if err != nil {
		t.Fatalf("NewWorkerPool(%d) failed: %v", workers, err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// TestWorkerPoolBasicOperations tests basic worker pool functionality
func TestWorkerPoolBasicOperations(t *testing.T) {
	pool := newTestPool(t, 4)

	executed := false
	success := pool.Submit(func() {
		executed = true
	})

	if !success {
		t.Error("Task submission failed")
	}

	if err := pool.Wait(); err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}

	if !executed {
		t.Error("Task was not executed")
	}
}

// TestWorkerPoolConcurrentSubmissions tests concurrent task submissions
func TestWorkerPoolConcurrentSubmissions(t *testing.T) {
	pool := newTestPool(t, 10)

	numTasks := 100
	var counter int64

	var wg sync.WaitGroup
	for i := 0; i < numTasks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Submit(func() {
				atomic.AddInt64(&counter, 1)
			})
		}()
	}

	wg.Wait()
	pool.Close()

	if counter != int64(numTasks) {
		t.Errorf("Expected counter %d, got %d", numTasks, counter)
	}
}

// TestWorkerPoolCloseRace validates that closing the pool while submitting
// tasks doesn't panic
func TestWorkerPoolCloseRace(t *testing.T) {
	for iteration := 0; iteration < 50; iteration++ {
		pool, err := NewWorkerPool(4)
		if err != nil {
			t.Fatalf("NewWorkerPool failed: %v", err)
		}

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					pool.Submit(func() {
						time.Sleep(100 * time.Microsecond)
					})
				}
			}()
		}

		time.Sleep(time.Millisecond)
		pool.Close()
		wg.Wait()
	}
}

func TestWorkerPoolSubmitAfterClose(t *testing.T) {
	pool := newTestPool(t, 2)
	pool.Close()

	if pool.Submit(func() {}) {
		t.Error("Submit after Close should return false")
	}
}

func TestWorkerPoolRecoversPanic(t *testing.T) {
	pool := newTestPool(t, 2)

	var ran int64
	pool.Submit(func() { panic("boom") })
	pool.Submit(func() { atomic.AddInt64(&ran, 1) })

	err := pool.Wait()
	if !errors.Is(err, ErrTaskPanic) {
		t.Fatalf("Expected ErrTaskPanic, got %v", err)
	}
	if atomic.LoadInt64(&ran) != 1 {
		t.Error("Worker should keep running after a panic")
	}
}

func TestNewWorkerPoolDefaults(t *testing.T) {
	pool := newTestPool(t, 0)

	if pool.Workers() != DefaultWorkers() {
		t.Errorf("Expected %d workers, got %d", DefaultWorkers(), pool.Workers())
	}
}

func TestWorkerPoolOverflow(t *testing.T) {
	// Extremely large worker counts are rejected before any goroutine starts
	_, err := NewWorkerPool(math.MaxInt)
	if !errors.Is(err, ErrTooManyWorkers) {
		t.Errorf("Expected ErrTooManyWorkers, got %v", err)
	}
}

func TestWorkerPoolNegativeWorkers(t *testing.T) {
	pool := newTestPool(t, -5)

	if pool.Workers() != DefaultWorkers() {
		t.Errorf("Expected %d workers for negative input, got %d", DefaultWorkers(), pool.Workers())
	}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		parts int
		want  [][2]int
	}{
		{"empty", 0, 4, nil},
		{"even", 6, 3, [][2]int{{0, 2}, {2, 4}, {4, 6}}},
		{"remainder", 7, 3, [][2]int{{0, 3}, {3, 5}, {5, 7}}},
		{"more parts than items", 2, 8, [][2]int{{0, 1}, {1, 2}}},
		{"non-positive parts", 3, 0, [][2]int{{0, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Partition(tt.n, tt.parts)
			if len(got) != len(tt.want) {
				t.Fatalf("Partition(%d, %d) = %v, want %v", tt.n, tt.parts, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
