package domain

import (
	"sort"
	"strings"
)

// Group is one project team: an unordered collection of students.
// Groups are transient value types owned by whoever produced them;
// member order carries no meaning.
type Group struct {
	members []*Student
}

// NewGroup creates a group from the given members.
func NewGroup(members ...*Student) *Group {
	g := &Group{members: make([]*Student, len(members))}
	copy(g.members, members)
	return g
}

// Add appends a member to the group.
func (g *Group) Add(s *Student) { g.members = append(g.members, s) }

// Len returns the number of members.
func (g *Group) Len() int { return len(g.members) }

// Members returns the group's members. The returned slice is a copy.
func (g *Group) Members() []*Student {
	out := make([]*Student, len(g.members))
	copy(out, g.members)
	return out
}

// MemberIDs returns the members' IDs in ascending order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.members))
	for i, s := range g.members {
		ids[i] = s.ID()
	}
	sort.Strings(ids)
	return ids
}

// Partition is a complete division of a roster into groups.
// Every grouper run ends by validating its partition against the roster
// it was given: no student may appear twice and none may be omitted.
type Partition struct {
	groups []*Group
}

// NewPartition creates a partition from the given groups.
func NewPartition(groups ...*Group) *Partition {
	p := &Partition{groups: make([]*Group, len(groups))}
	copy(p.groups, groups)
	return p
}

// Groups returns the partition's groups. The returned slice is a copy;
// the groups themselves are shared.
func (p *Partition) Groups() []*Group {
	out := make([]*Group, len(p.groups))
	copy(out, p.groups)
	return out
}

// Len returns the number of groups in the partition.
func (p *Partition) Len() int { return len(p.groups) }

// Clone returns a deep copy of the partition: new groups with new member
// slices referencing the same immutable students. Annealing uses this to
// snapshot the best partition seen without aliasing its working state.
func (p *Partition) Clone() *Partition {
	groups := make([]*Group, len(p.groups))
	for i, g := range p.groups {
		groups[i] = NewGroup(g.members...)
	}
	return &Partition{groups: groups}
}

// Validate checks the partition's coverage invariant against the roster:
// every roster member appears in exactly one group and no group contains
// a student outside the roster. Returns a PartitionError describing the
// first violation found, or nil.
func (p *Partition) Validate(roster *Roster) error {
	seen := make(map[string]struct{}, roster.Len())
	for _, g := range p.groups {
		for _, s := range g.members {
			if _, ok := roster.Lookup(s.ID()); !ok {
				return NewPartitionError(s.ID(), "not on roster")
			}
			if _, dup := seen[s.ID()]; dup {
				return NewPartitionError(s.ID(), "assigned to more than one group")
			}
			seen[s.ID()] = struct{}{}
		}
	}
	if len(seen) != roster.Len() {
		for _, s := range roster.Students() {
			if _, ok := seen[s.ID()]; !ok {
				return NewPartitionError(s.ID(), "omitted from partition")
			}
		}
	}
	return nil
}

// Key returns a canonical string identifying the partition's shape
// independent of group order and member order. Two partitions assigning
// the same students together produce the same key, which makes seeded
// reproducibility straightforward to assert in tests.
func (p *Partition) Key() string {
	groups := make([]string, 0, len(p.groups))
	for _, g := range p.groups {
		if g.Len() == 0 {
			continue
		}
		groups = append(groups, strings.Join(g.MemberIDs(), ","))
	}
	sort.Strings(groups)
	return strings.Join(groups, ";")
}
