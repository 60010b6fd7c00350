package chat

// Registry tracks joined participants by connection id, in join order.
// It is owned by the hub goroutine and holds no lock.
type Registry struct {
	byID  map[string]*Participant
	order []string
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Participant)}
}

// Join records p, replacing any participant already joined on p.ID. A
// replacement keeps the original join position.
func (r *Registry) Join(p Participant) *Participant {
	if existing, ok := r.byID[p.ID]; ok {
		*existing = p
		return existing
	}

	entry := p
	r.byID[p.ID] = &entry
	r.order = append(r.order, p.ID)
	return &entry
}

// Leave removes the participant on id and returns it. Removing an unknown id is a no-op.
func (r *Registry) Leave(id string) (Participant, bool) {
	p, ok := r.byID[id]
	if !ok {
		return Participant{}, false
	}

	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return *p, true
}

func (r *Registry) Get(id string) (Participant, bool) {
	p, ok := r.byID[id]
	if !ok {
		return Participant{}, false
	}
	return *p, true
}

// IDs returns the connection ids of all participants in join order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ListNonAdmin returns the participants without the admin flag, in join order.
func (r *Registry) ListNonAdmin() []Participant {
	out := []Participant{}
	for _, id := range r.order {
		if p := r.byID[id]; !p.IsAdmin {
			out = append(out, *p)
		}
	}
	return out
}

func (r *Registry) Len() int { return len(r.order) }
