package service

import "sync"

// gameLock serializes multi-record mutations per game. Catch attempts,
// trades, purchases and encounter updates read several rows, decide, then
// write; holding the game's lock closes the gap between check and write.
type gameLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newGameLock() *gameLock {
	return &gameLock{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given game, creating it on first use.
// The returned function releases it.
func (g *gameLock) Lock(gameID string) func() {
	g.mu.Lock()
	lock, ok := g.locks[gameID]
	if !ok {
		lock = &sync.Mutex{}
		g.locks[gameID] = lock
	}
	g.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
