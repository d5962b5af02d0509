package domain

import (
	"slices"
	"strconv"
	"strings"
)

// groupPrefixes maps grouped section kinds onto the id prefix their entries
// carry. An entry id such as "exp3-role" belongs to group 3 of an
// experience section and fills its "role" role.
var groupPrefixes = map[Kind]string{
	KindExperience: "exp",
	KindEducation:  "edu",
	KindProjects:   "proj",
	KindVolunteer:  "vol",
}

// GroupRef identifies the group an entry belongs to.
type GroupRef struct {
	Kind  Kind
	Index int
	Role  string
}

// Prefix returns the group key shared by every entry of the group, e.g. "exp3".
func (g GroupRef) Prefix() string {
	return GroupPrefix(g.Kind, g.Index)
}

// EntryID returns the id of the entry holding role within the group.
func (g GroupRef) EntryID(role string) string {
	return g.Prefix() + "-" + role
}

// GroupPrefix builds the group key for kind k and index i.
func GroupPrefix(k Kind, i int) string {
	return groupPrefixes[k] + strconv.Itoa(i)
}

// ParseGroupRef reads the group tag encoded in an entry id. It returns nil for
// ids that do not follow the <prefix><digits>-<role> pattern.
func ParseGroupRef(id string) *GroupRef {
	key, role, ok := strings.Cut(id, "-")
	if !ok {
		return nil
	}
	kind, index, ok := ParseGroupPrefix(key)
	if !ok {
		return nil
	}
	return &GroupRef{Kind: kind, Index: index, Role: role}
}

// ParseGroupPrefix splits a group key such as "proj2" into its kind and index.
// Indexes start at 1 and carry no leading zero, so a key always equals the
// prefix rebuilt from its parts.
func ParseGroupPrefix(key string) (Kind, int, bool) {
	for kind, p := range groupPrefixes {
		digits, ok := strings.CutPrefix(key, p)
		if !ok || digits == "" {
			continue
		}
		if digits[0] == '0' {
			return KindNone, 0, false
		}
		for _, r := range digits {
			if r < '0' || r > '9' {
				return KindNone, 0, false
			}
		}
		i, err := strconv.Atoi(digits)
		if err != nil {
			return KindNone, 0, false
		}
		return kind, i, true
	}
	return KindNone, 0, false
}

// GroupIndexes lists the distinct group indexes present in s, in ascending
// order.
func GroupIndexes(s Section) []int {
	seen := map[int]bool{}
	var out []int
	for _, e := range s.Entries {
		if e.Group == nil || e.Group.Kind != s.Kind || seen[e.Group.Index] {
			continue
		}
		seen[e.Group.Index] = true
		out = append(out, e.Group.Index)
	}
	slices.Sort(out)
	return out
}

// NextGroupIndex returns one more than the highest group index s has held,
// or 1 when it never had groups. Indexes are never reused, not even after
// the highest group is deleted.
func NextGroupIndex(s Section) int {
	next := s.GroupSeq + 1
	for _, i := range GroupIndexes(s) {
		if i >= next {
			next = i + 1
		}
	}
	return next
}

// GroupEntries returns the entries of group index i keyed by role.
func GroupEntries(s Section, i int) map[string]Entry {
	out := map[string]Entry{}
	for _, e := range s.Entries {
		if e.Group != nil && e.Group.Kind == s.Kind && e.Group.Index == i {
			out[e.Group.Role] = e
		}
	}
	return out
}
