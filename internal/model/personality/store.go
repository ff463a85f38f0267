package personality

// Store exposes personality retrieval for HTTP handlers and the turn
// pipeline.
type Store interface {
	List() []Profile
	FindByID(id string) (Profile, bool)
}

// MemoryStore implements Store with an in-memory slice; the catalog is
// fixed at startup.
type MemoryStore struct {
	items []Profile
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied profiles.
func NewMemoryStore(items []Profile) *MemoryStore {
	return &MemoryStore{items: append([]Profile(nil), items...)}
}

// List returns the predefined personality list.
func (s *MemoryStore) List() []Profile {
	return append([]Profile(nil), s.items...)
}

// FindByID looks up a profile by identifier.
func (s *MemoryStore) FindByID(id string) (Profile, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Profile{}, false
}

// Resolve returns the profile for id, falling back to the default profile
// when the id is empty or unknown.
func Resolve(s Store, id string) Profile {
	if profile, ok := s.FindByID(id); ok {
		return profile
	}
	profile, _ := s.FindByID(DefaultID)
	return profile
}
