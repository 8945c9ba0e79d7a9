package particles

type filterMode uint8

const (
	filterNone filterMode = iota
	filterAll
	filterAny
)

// Filter selects particles by tag. The zero value matches everything.
type Filter struct {
	mode filterMode
	tags []string
}

// NoFilter matches every particle.
func NoFilter() Filter {
	return Filter{}
}

// AllOf matches particles carrying every listed tag. An empty tag list
// matches everything: the intersection over zero constraints is the
// identity, so AllOf() behaves like NoFilter.
func AllOf(tags ...string) Filter {
	return Filter{mode: filterAll, tags: tags}
}

// AnyOf matches particles carrying at least one of the listed tags. An
// empty tag list matches nothing.
func AnyOf(tags ...string) Filter {
	return Filter{mode: filterAny, tags: tags}
}

// Matches reports whether p satisfies the filter, judged against the
// particle's own tag set.
func (f Filter) Matches(p *Particle) bool {
	switch f.mode {
	case filterAll:
		for _, tag := range f.tags {
			if !p.HasTag(tag) {
				return false
			}
		}
		return true
	case filterAny:
		for _, tag := range f.tags {
			if p.HasTag(tag) {
				return true
			}
		}
		return false
	}
	return true
}
