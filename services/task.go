package services

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/yeremiapane/restaurant-floor/utils"
)

// Task posts one unit of work to the loop every Interval.
type Task struct {
	Name     string
	Interval time.Duration
	Work     func()

	loop     *Loop
	StopChan chan struct{}
	done     chan struct{}
	once     sync.Once
	started  atomic.Bool
}

func NewTask(name string, interval time.Duration, loop *Loop, work func()) *Task {
	return &Task{
		Name:     name,
		Interval: interval,
		Work:     work,
		loop:     loop,
		StopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start is a no-op on a task that was already started.
func (t *Task) Start() {
	if !t.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(t.done)
		ticker := time.NewTicker(t.Interval)
		defer ticker.Stop()

		utils.InfoLogger.Printf("%s started (every %s)", t.Name, t.Interval)
		for {
			select {
			case <-ticker.C:
				if err := t.loop.Do(t.Work); err != nil {
					return
				}
			case <-t.StopChan:
				return
			}
		}
	}()
}

// Stop prevents further ticks and waits for an in-flight one to finish.
func (t *Task) Stop() {
	t.once.Do(func() {
		close(t.StopChan)
	})
	if t.started.Load() {
		<-t.done
		utils.InfoLogger.Printf("%s stopped", t.Name)
	}
}
