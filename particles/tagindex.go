package particles

// TagIndex holds a membership list plus a tag-to-members mapping, so both
// "all members" and "members with tag" resolve without scanning particles'
// own tag sets. The grid keeps one per cell and one for the whole
// population.
//
// Invariant: a member has every tag of its tag set reflected in byTag, and
// a non-member has no byTag entries.
type TagIndex struct {
	members []*Particle
	pos     map[*Particle]int
	byTag   map[string]map[*Particle]struct{}
}

// NewTagIndex creates an empty index.
func NewTagIndex() *TagIndex {
	return &TagIndex{
		pos:   make(map[*Particle]int),
		byTag: make(map[string]map[*Particle]struct{}),
	}
}

// Add inserts p and records all of its current tags. No-op if p is already
// a member.
func (t *TagIndex) Add(p *Particle) {
	if _, ok := t.pos[p]; ok {
		return
	}
	t.pos[p] = len(t.members)
	t.members = append(t.members, p)
	for tag := range p.tags {
		t.addTag(p, tag)
	}
}

// Remove deletes p and strips every tag association. No-op if p is not a
// member. Swap-remove keeps deletion O(1) in the membership list.
func (t *TagIndex) Remove(p *Particle) {
	i, ok := t.pos[p]
	if !ok {
		return
	}
	last := len(t.members) - 1
	t.members[i] = t.members[last]
	t.pos[t.members[i]] = i
	t.members = t.members[:last]
	delete(t.pos, p)

	for tag := range p.tags {
		t.removeTag(p, tag)
	}
}

// Contains reports whether p is a member.
func (t *TagIndex) Contains(p *Particle) bool {
	_, ok := t.pos[p]
	return ok
}

// Len returns the member count.
func (t *TagIndex) Len() int {
	return len(t.members)
}

// addTag records a single tag association for a member.
func (t *TagIndex) addTag(p *Particle, tag string) {
	set := t.byTag[tag]
	if set == nil {
		set = make(map[*Particle]struct{})
		t.byTag[tag] = set
	}
	set[p] = struct{}{}
}

// removeTag drops a single tag association.
func (t *TagIndex) removeTag(p *Particle, tag string) {
	set := t.byTag[tag]
	if set == nil {
		return
	}
	delete(set, p)
	if len(set) == 0 {
		delete(t.byTag, tag)
	}
}

// Query returns a fresh slice of members matching the filter, in membership
// order. Iterating the membership list keeps results deterministic and
// makes AnyOf dedup automatic: each member is visited once regardless of
// how many requested tags it carries.
func (t *TagIndex) Query(f Filter) []*Particle {
	out := make([]*Particle, 0, len(t.members))
	for _, p := range t.members {
		if t.matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

// matches answers from the index's own tag mapping rather than the
// particle's tag set, so queries reflect exactly what has been indexed.
func (t *TagIndex) matches(p *Particle, f Filter) bool {
	switch f.mode {
	case filterAll:
		for _, tag := range f.tags {
			if _, ok := t.byTag[tag][p]; !ok {
				return false
			}
		}
		return true
	case filterAny:
		for _, tag := range f.tags {
			if _, ok := t.byTag[tag][p]; ok {
				return true
			}
		}
		return false
	}
	return true
}

// queryInto appends matching members to dst and returns the result. Reuse
// dst across calls to avoid allocations in hot paths.
func (t *TagIndex) queryInto(dst []*Particle, f Filter) []*Particle {
	for _, p := range t.members {
		if t.matches(p, f) {
			dst = append(dst, p)
		}
	}
	return dst
}
