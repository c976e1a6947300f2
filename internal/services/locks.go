package services

import "sync"

// keyedMutex serializes critical sections per string key. The funding
// check-then-insert must hold the wish's key from the read of current
// offers through the insert of the new offer, otherwise two concurrent
// offers can jointly overshoot the price. Copy attempts use it keyed by
// (user, source wish) for the duplicate probe.
//
// Entries are reference-counted and removed once the last holder releases
// the key, so the map does not grow with the number of wishes ever seen.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// serviceLocks is shared by the wish and offer services so that a price
// change or delete racing a first offer against the same wish serializes
// with CreateOffer, not just offers with each other.
var serviceLocks = newKeyedMutex()

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{entries: make(map[string]*lockEntry)}
}

func (k *keyedMutex) Lock(key string) {
	k.mu.Lock()
	entry, ok := k.entries[key]
	if !ok {
		entry = &lockEntry{}
		k.entries[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

func (k *keyedMutex) Unlock(key string) {
	k.mu.Lock()
	entry := k.entries[key]
	entry.refs--
	if entry.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()

	entry.mu.Unlock()
}
