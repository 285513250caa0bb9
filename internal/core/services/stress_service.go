package services

import (
	"context"
	"math/rand"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/votingapp/api/internal/core/ports"
)

const (
	burnIterations = 1_000_000
	memChunkBytes  = 100 * 1024 * 1024
	memPoolSlots   = 10_000
)

type stressService struct {
	cpuFactor int
	memFactor int

	mu   sync.Mutex
	pool [][]byte
}

// NewStressService builds the load generator. The pool retains every buffer
// it allocates for the lifetime of the process; a buffer is only released
// when a later Burn happens to pick the same slot and overwrites it. Large
// factors can take the process down with an out-of-memory kill, which is the
// point of the endpoint that triggers this.
func NewStressService(cpuFactor, memFactor int) ports.StressService {
	return &stressService{
		cpuFactor: cpuFactor,
		memFactor: memFactor,
		pool:      make([][]byte, memPoolSlots),
	}
}

func (s *stressService) Burn(ctx context.Context) {
	s.eatMemory()
	s.eatCPU(ctx)
}

func (s *stressService) eatMemory() {
	logrus.WithField("mem_factor", s.memFactor).Info("stress: retaining memory buffer")

	buf := make([]byte, memChunkBytes*s.memFactor)
	slot := rand.Intn(memPoolSlots)

	s.mu.Lock()
	s.pool[slot] = buf
	s.mu.Unlock()
}

// eatCPU runs one busy worker per processing unit and blocks until all of
// them finish. Workers share nothing and check for caller cancellation every
// so often, so a disconnected client does not keep the burn alive.
func (s *stressService) eatCPU(ctx context.Context) {
	workers := runtime.NumCPU()
	logrus.WithFields(logrus.Fields{
		"cpu_factor": s.cpuFactor,
		"workers":    workers,
	}).Info("stress: burning cpu")

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var x uint64
			total := burnIterations * s.cpuFactor
			for n := 0; n < total; n++ {
				x = uint64(n) * uint64(n)
				if n%65536 == 0 && ctx.Err() != nil {
					return
				}
			}
			_ = x
		}()
	}
	wg.Wait()
}
