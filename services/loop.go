package services

import (
	"sync"
	"sync/atomic"
)

// Loop runs submitted jobs one at a time on a single goroutine. Everything
// that touches the registry goes through it, so jobs never interleave.
type Loop struct {
	jobs     chan func()
	stopChan chan struct{}
	done     chan struct{}
	started  atomic.Bool
	stopOnce sync.Once
}

func NewLoop() *Loop {
	return &Loop{
		jobs:     make(chan func()),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (l *Loop) Start() {
	if !l.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(l.done)
		for {
			select {
			case job := <-l.jobs:
				job()
			case <-l.stopChan:
				return
			}
		}
	}()
}

// Stop lets the running job finish and refuses new ones.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
	if l.started.Load() {
		<-l.done
	}
}

// Do runs fn on the loop and waits for it. A panic inside fn is re-raised in
// the caller's goroutine. A loop that was never started refuses work.
func (l *Loop) Do(fn func()) error {
	if !l.started.Load() {
		return ErrLoopStopped
	}
	finished := make(chan struct{})
	var panicked any

	job := func() {
		defer close(finished)
		defer func() {
			panicked = recover()
		}()
		fn()
	}

	select {
	case l.jobs <- job:
	case <-l.stopChan:
		return ErrLoopStopped
	}
	<-finished

	if panicked != nil {
		panic(panicked)
	}
	return nil
}
