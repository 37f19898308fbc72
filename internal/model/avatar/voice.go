package avatar

// Voice 描述 /voices 返回的一个可选声音。
type Voice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SeedVoices 返回本地 TTS 默认提供的声音列表。
func SeedVoices() []Voice {
	return []Voice{
		{ID: "default", Name: "Default Voice"},
		{ID: "male", Name: "Male Voice"},
		{ID: "female", Name: "Female Voice"},
	}
}

// VoiceStore exposes voice retrieval for HTTP handlers.
type VoiceStore interface {
	List() []Voice
	FindByID(id string) (Voice, bool)
}

// MemoryVoiceStore implements VoiceStore with an in-memory slice.
type MemoryVoiceStore struct {
	items []Voice
}

// NewMemoryVoiceStore returns a store preloaded with the supplied voices.
func NewMemoryVoiceStore(items []Voice) *MemoryVoiceStore {
	return &MemoryVoiceStore{items: append([]Voice(nil), items...)}
}

// List returns a copy of the stored voices.
func (s *MemoryVoiceStore) List() []Voice {
	return append([]Voice(nil), s.items...)
}

// FindByID looks up a voice by identifier.
func (s *MemoryVoiceStore) FindByID(id string) (Voice, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Voice{}, false
}
