package services

// Animator drives the outline flash of pinged tables.
type Animator struct {
	reg *Registry
}

func NewAnimator(reg *Registry) *Animator {
	return &Animator{reg: reg}
}

// Tick flips the flash phase and tells the renderer about every pinged table.
func (a *Animator) Tick() {
	phase := a.reg.toggleFlash()
	now := a.reg.now()
	for _, t := range a.reg.Tables() {
		if !t.Ping {
			continue
		}
		a.reg.bus.Publish(Event{Type: EventPing, TableID: t.ID, Flash: phase, At: now})
	}
}
