// Package cmap provides a string-keyed concurrent map split into shards,
// each guarded by its own RWMutex.
//
// Keys are assigned to shards with murmur3, so the same key always lands
// in the same shard for the life of the process.
//
//	m := cmap.New[*entry]()
//	e := m.GetOrCreate(ip, newEntry)
//	m.DeleteFunc(func(_ string, e *entry) bool { return e.idle(now) })
package cmap
