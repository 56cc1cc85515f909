package record

// Store is the authoritative ordered list of records for one screen.
// Insertion order is display order. Store is not safe for concurrent use;
// Screen serializes access to it.
type Store[T any] struct {
	records []Record[T]
}

// NewStore returns a store seeded with the given payloads, ids assigned 1..n.
func NewStore[T any](seed ...T) *Store[T] {
	s := &Store[T]{records: make([]Record[T], 0, len(seed))}
	for _, p := range seed {
		s.Add(p)
	}
	return s
}

// List returns copies of the records in insertion order.
func (s *Store[T]) List() []Record[T] {
	out := make([]Record[T], len(s.records))
	for i, r := range s.records {
		out[i] = r.clone()
	}
	return out
}

func (s *Store[T]) Len() int { return len(s.records) }

// NextID is max(existing ids)+1, or 1 for an empty store. Deleting the
// record holding the max id makes that id available again.
func (s *Store[T]) NextID() int {
	top := 0
	for _, r := range s.records {
		if r.ID > top {
			top = r.ID
		}
	}
	return top + 1
}

// Add assigns the next id to payload and appends it.
func (s *Store[T]) Add(payload T) Record[T] {
	r := Record[T]{ID: s.NextID(), Payload: clone(payload)}
	s.records = append(s.records, r)
	return r.clone()
}

func (s *Store[T]) Get(id int) (Record[T], bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Record[T]{}, false
	}
	return s.records[i].clone(), true
}

// Replace overwrites the payload of id in place. It reports false and
// changes nothing when id is absent.
func (s *Store[T]) Replace(id int, payload T) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.records[i].Payload = clone(payload)
	return true
}

// Remove deletes id. Removing an absent id is a no-op that reports false.
func (s *Store[T]) Remove(id int) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return true
}

func (s *Store[T]) indexOf(id int) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
