package services

import "sync"

const defaultClashLogSize = 50

// ClashLog remembers the most recent clashes for the staff-facing clash list.
type ClashLog struct {
	mu      sync.Mutex
	size    int
	clashes []Clash
}

func NewClashLog(size int) *ClashLog {
	if size <= 0 {
		size = defaultClashLogSize
	}
	return &ClashLog{size: size}
}

func (l *ClashLog) Notify(event Event) {
	if event.Type != EventClash || event.Clash == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.clashes = append(l.clashes, *event.Clash)
	if over := len(l.clashes) - l.size; over > 0 {
		l.clashes = append([]Clash(nil), l.clashes[over:]...)
	}
}

// Recent returns clashes newest first.
func (l *ClashLog) Recent() []Clash {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Clash, len(l.clashes))
	for i, c := range l.clashes {
		out[len(l.clashes)-1-i] = c
	}
	return out
}
