package locks

import "sync"

// KeyedMutex serializes critical sections per string key. Used to guard the
// review read-aggregate-write and the premium listing count-then-insert for
// a single concierge without blocking unrelated ones.
//
// Mutex entries are never evicted; the key space (concierge ids with
// concurrent writers) stays small enough that this is acceptable.
type KeyedMutex struct {
	mu sync.Map // key -> *sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	val, _ := k.mu.LoadOrStore(key, &sync.Mutex{})
	m := val.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}
