// Package activity keeps a bounded in-memory feed of user actions.
package activity

import (
	"sync"
	"time"

	"github.com/AMULYA007-hub/campus-hire/internal/models"
)

// DefaultCapacity is used when New gets a non-positive capacity.
const DefaultCapacity = 500

// Log is a ring buffer of activities. The oldest entry is dropped when full.
type Log struct {
	mu     sync.RWMutex
	buf    []models.Activity
	start  int
	size   int
	nextID int64
	now    func() time.Time
}

func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		buf: make([]models.Activity, capacity),
		now: time.Now,
	}
}

// Record appends a and returns it with its id and time set.
func (l *Log) Record(a models.Activity) models.Activity {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	a.ID = l.nextID
	if a.At.IsZero() {
		a.At = l.now().UTC()
	}

	idx := (l.start + l.size) % len(l.buf)
	if l.size == len(l.buf) {
		l.start = (l.start + 1) % len(l.buf)
	} else {
		l.size++
	}
	l.buf[idx] = a
	return a
}

// List returns the matching activities, newest first.
func (l *Log) List(f models.ActivityFilter) []models.Activity {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := l.size
	if f.Limit > 0 {
		n = min(n, f.Limit)
	}
	out := make([]models.Activity, 0, n)
	for i := l.size - 1; i >= 0; i-- {
		a := l.buf[(l.start+i)%len(l.buf)]
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		out = append(out, a)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

// Len returns the number of entries held.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.size
}
