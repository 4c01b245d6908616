package service

import (
	"fmt"
	"sync"
)

// KeyMutex serializes work per subject key (contest id, learner id). A single
// instance is shared by every service that mutates learner or contest state,
// so a rank recompute granting a badge and a quiz submission updating the same
// learner row never interleave. Lock order is contest key before learner key;
// no path takes them the other way around. Entries are never evicted; the key
// space is bounded by the number of live contests and learners, which is
// small at this scale.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyMutex() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

func (k *KeyMutex) Lock(key string) {
	k.get(key).Lock()
}

func (k *KeyMutex) Unlock(key string) {
	k.get(key).Unlock()
}

func contestKey(contestID uint) string {
	return fmt.Sprintf("contest:%d", contestID)
}

func learnerKey(userID uint) string {
	return fmt.Sprintf("learner:%d", userID)
}
