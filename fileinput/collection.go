package fileinput

import (
	"iter"
	"slices"
)

// Snapshot is an immutable view of a Collection. A snapshot handed out is
// never changed by later mutations.
type Snapshot struct {
	version uint64
	keys    []string
	files   map[string]File
}

var emptySnapshot = &Snapshot{files: map[string]File{}}

// Version increases by one for every snapshot a Collection produces.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Len returns the number of files in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.keys)
}

// Get returns the file stored under key.
func (s *Snapshot) Get(key string) (File, bool) {
	f, ok := s.files[key]
	return f, ok
}

// Has reports whether key is present.
func (s *Snapshot) Has(key string) bool {
	_, ok := s.files[key]
	return ok
}

// Keys yields keys in insertion order.
func (s *Snapshot) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, k := range s.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Values yields files in insertion order.
func (s *Snapshot) Values() iter.Seq[File] {
	return func(yield func(File) bool) {
		for _, k := range s.keys {
			if !yield(s.files[k]) {
				return
			}
		}
	}
}

// Entries yields key/file pairs in insertion order.
func (s *Snapshot) Entries() iter.Seq2[string, File] {
	return func(yield func(string, File) bool) {
		for _, k := range s.keys {
			if !yield(k, s.files[k]) {
				return
			}
		}
	}
}

// Collection is an ordered set of files deduplicated by an IdentityFunc.
//
// A file added under a key that is already present replaces the stored file
// but keeps its position.
type Collection struct {
	identity  IdentityFunc
	current   *Snapshot
	listeners map[int]func(*Snapshot)
	nextID    int
}

// NewCollection returns an empty collection. A nil identity means
// NameIdentity.
func NewCollection(identity IdentityFunc) *Collection {
	if identity == nil {
		identity = NameIdentity
	}
	return &Collection{
		identity:  identity,
		current:   emptySnapshot,
		listeners: make(map[int]func(*Snapshot)),
	}
}

// Key returns the key the collection derives for f.
func (c *Collection) Key(f File) string {
	return c.identity(f)
}

// Add inserts f, or replaces the file already stored under its key, and
// returns the resulting snapshot. A nil file is ignored.
func (c *Collection) Add(f File) *Snapshot {
	if f == nil {
		return c.current
	}
	key := c.identity(f)
	prev := c.current

	keys := prev.keys
	if _, ok := prev.files[key]; !ok {
		keys = append(slices.Clip(keys), key)
	}
	files := make(map[string]File, len(keys))
	for k, v := range prev.files {
		files[k] = v
	}
	files[key] = f

	c.publish(keys, files)
	return c.current
}

// Set adds f and returns the collection so calls can be chained.
func (c *Collection) Set(f File) *Collection {
	c.Add(f)
	return c
}

// Delete removes the file stored under key. It reports whether anything was
// removed; an absent key leaves the collection untouched.
func (c *Collection) Delete(key string) bool {
	prev := c.current
	if _, ok := prev.files[key]; !ok {
		return false
	}

	keys := make([]string, 0, len(prev.keys)-1)
	for _, k := range prev.keys {
		if k != key {
			keys = append(keys, k)
		}
	}
	files := make(map[string]File, len(keys))
	for _, k := range keys {
		files[k] = prev.files[k]
	}

	c.publish(keys, files)
	return true
}

// DeleteFile removes the entry f resolves to, exactly as Delete would with
// the key Add used for f.
func (c *Collection) DeleteFile(f File) bool {
	if f == nil {
		return false
	}
	return c.Delete(c.identity(f))
}

// Clear drops every file.
func (c *Collection) Clear() {
	c.publish(nil, map[string]File{})
}

// Snapshot returns the current snapshot.
func (c *Collection) Snapshot() *Snapshot {
	return c.current
}

// Len returns the number of files currently held.
func (c *Collection) Len() int { return c.current.Len() }

// Get returns the file currently stored under key.
func (c *Collection) Get(key string) (File, bool) { return c.current.Get(key) }

// Has reports whether key is currently present.
func (c *Collection) Has(key string) bool { return c.current.Has(key) }

// Keys yields the current keys in insertion order.
func (c *Collection) Keys() iter.Seq[string] { return c.current.Keys() }

// Values yields the current files in insertion order.
func (c *Collection) Values() iter.Seq[File] { return c.current.Values() }

// Entries yields the current key/file pairs in insertion order.
func (c *Collection) Entries() iter.Seq2[string, File] { return c.current.Entries() }

// Subscribe registers fn to run after every new snapshot. The returned func
// removes it.
func (c *Collection) Subscribe(fn func(*Snapshot)) (cancel func()) {
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

func (c *Collection) publish(keys []string, files map[string]File) {
	c.current = &Snapshot{
		version: c.current.version + 1,
		keys:    keys,
		files:   files,
	}
	for _, id := range sortedIDs(c.listeners) {
		if fn, ok := c.listeners[id]; ok {
			fn(c.current)
		}
	}
}

func sortedIDs[T any](m map[int]T) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
