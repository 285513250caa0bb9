package ports

import "context"

// StressService deliberately consumes CPU and memory to simulate load.
type StressService interface {
	Burn(ctx context.Context)
}
