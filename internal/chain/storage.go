package chain

// memStorage is the per-account key/value store. Values are copied on the
// way in and out so contract code cannot alias chain state.
type memStorage struct {
	m map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{m: make(map[string][]byte)}
}

func (s *memStorage) Get(key []byte) []byte {
	v, ok := s.m[string(key)]
	if !ok {
		return nil
	}
	return append([]byte(nil), v...)
}

func (s *memStorage) Put(key, value []byte) {
	s.m[string(key)] = append([]byte(nil), value...)
}

func (s *memStorage) Has(key []byte) bool {
	_, ok := s.m[string(key)]
	return ok
}

func (s *memStorage) Delete(key []byte) {
	delete(s.m, string(key))
}

func (s *memStorage) snapshot() map[string][]byte {
	snap := make(map[string][]byte, len(s.m))
	for k, v := range s.m {
		snap[k] = v
	}
	return snap
}

func (s *memStorage) restore(snap map[string][]byte) {
	s.m = make(map[string][]byte, len(snap))
	for k, v := range snap {
		s.m[k] = v
	}
}
