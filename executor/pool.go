package executor

import (
	"context"
	"sync"
)

// Pool dispatches batch runs as independent goroutines. With maxWorkers <= 0
// every submission starts immediately; a positive bound turns the pool into
// a semaphore for admission control.
type Pool struct {
	sem chan struct{}
	wg  sync.WaitGroup
}

func NewPool(maxWorkers int) *Pool {
	p := &Pool{}
	if maxWorkers > 0 {
		p.sem = make(chan struct{}, maxWorkers)
	}
	return p
}

func (p *Pool) Submit(ctx context.Context, run func(context.Context)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		if p.sem == nil {
			run(ctx)
			return
		}

		select {
		case p.sem <- struct{}{}:
			defer func() { <-p.sem }()
			run(ctx)
		case <-ctx.Done():
		}
	}()
}

func (p *Pool) Wait() {
	p.wg.Wait()
}
