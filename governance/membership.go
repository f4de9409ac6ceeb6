package governance

// MemberSet is an insertion-ordered set of member identities.
type MemberSet struct {
	order []string
	index map[string]struct{}
}

// NewMemberSet returns a set holding ids without duplicates.
func NewMemberSet(ids ...string) *MemberSet {
	s := &MemberSet{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id unless it is already present.
func (s *MemberSet) Add(id string) {
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
}

// Remove deletes id if present.
func (s *MemberSet) Remove(id string) {
	if _, ok := s.index[id]; !ok {
		return
	}
	delete(s.index, id)
	for i, m := range s.order {
		if m == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Contains reports whether id is a member.
func (s *MemberSet) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of members.
func (s *MemberSet) Len() int {
	return len(s.order)
}

// List returns a copy of the members in insertion order.
func (s *MemberSet) List() []string {
	return append([]string{}, s.order...)
}
