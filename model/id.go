package model

import (
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
	nowFn  = time.Now
)

// NewID returns a millisecond timestamp identifier. Ids handed out by one
// process are strictly increasing, so two records created within the same
// millisecond still get distinct ids.
func NewID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	id := nowFn().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}
