package services

import (
	"time"

	"github.com/yeremiapane/restaurant-floor/utils"
)

type EngineConfig struct {
	SchedulerInterval time.Duration
	PingInterval      time.Duration
	Horizon           time.Duration
	Clock             Clock
}

var DefaultEngineConfig = EngineConfig{
	SchedulerInterval: 10 * time.Second,
	PingInterval:      500 * time.Millisecond,
	Horizon:           DefaultHorizon,
}

// Engine is the floor assignment engine: the registry plus the components
// that act on it, all driven from one loop.
type Engine struct {
	Registry  *Registry
	Lifecycle *Lifecycle
	Scheduler *Scheduler
	Animator  *Animator
	Bus       *Bus

	loop          *Loop
	scheduleTask  *Task
	animationTask *Task
}

func NewEngine(store Store, cfg EngineConfig) *Engine {
	if cfg.SchedulerInterval <= 0 {
		cfg.SchedulerInterval = DefaultEngineConfig.SchedulerInterval
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = DefaultEngineConfig.PingInterval
	}
	if cfg.Horizon <= 0 {
		cfg.Horizon = DefaultEngineConfig.Horizon
	}

	bus := NewBus()
	reg := NewRegistry(store, bus, cfg.Clock)
	scheduler := NewScheduler(reg)
	scheduler.Horizon = cfg.Horizon
	animator := NewAnimator(reg)
	loop := NewLoop()

	e := &Engine{
		Registry:  reg,
		Lifecycle: NewLifecycle(reg),
		Scheduler: scheduler,
		Animator:  animator,
		Bus:       bus,
		loop:      loop,
	}
	e.scheduleTask = NewTask("Assignment scheduler", cfg.SchedulerInterval, loop, func() {
		scheduler.Tick(false)
	})
	e.animationTask = NewTask("Ping animator", cfg.PingInterval, loop, animator.Tick)
	return e
}

// Subscribe registers an observer of floor events. Call it before Start.
func (e *Engine) Subscribe(s Subscriber) {
	e.Bus.Subscribe(s)
}

// Start loads the floor, runs the population pass and starts both timers.
func (e *Engine) Start() error {
	e.loop.Start()

	err := e.Do(func() error {
		if err := e.Registry.Load(); err != nil {
			return err
		}
		e.Scheduler.Populate()
		return nil
	})
	if err != nil {
		e.loop.Stop()
		return err
	}

	e.scheduleTask.Start()
	e.animationTask.Start()
	utils.InfoLogger.Println("Floor engine started")
	return nil
}

// Stop halts both timers, then the loop. A tick already running completes.
func (e *Engine) Stop() {
	e.scheduleTask.Stop()
	e.animationTask.Stop()
	e.loop.Stop()
	utils.InfoLogger.Println("Floor engine stopped")
}

// Do runs fn on the engine loop and returns its error.
func (e *Engine) Do(fn func() error) error {
	var result error
	if err := e.loop.Do(func() { result = fn() }); err != nil {
		return err
	}
	return result
}
