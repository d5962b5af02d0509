package usecase

import "resume-builder/internal/domain"

// DragSession carries the item being dragged within one section. It is owned
// by the presentation layer for the lifetime of one drag gesture and is
// always cleared on release, including releases outside any valid target.
type DragSession struct {
	sectionID string
	sourceID  string
	grouped   bool
}

// Begin starts dragging sourceID, an entry id or, for grouped sections, a
// group prefix.
func (s *DragSession) Begin(sectionID, sourceID string, grouped bool) {
	s.sectionID, s.sourceID, s.grouped = sectionID, sourceID, grouped
}

// Active reports whether a drag is in progress.
func (s *DragSession) Active() bool { return s.sourceID != "" }

// Source returns the dragged item.
func (s *DragSession) Source() (sectionID, sourceID string, ok bool) {
	return s.sectionID, s.sourceID, s.Active()
}

// Cancel ends the drag without a drop.
func (s *DragSession) Cancel() { *s = DragSession{} }

// Release drops the dragged item onto targetID: the source is taken out of
// the current order and reinserted at the target's position. An empty,
// unknown or identical target leaves d unchanged.
func (s *DragSession) Release(b *Builder, d domain.Document, sectionID, targetID string) domain.Document {
	defer s.Cancel()
	if !s.Active() || sectionID != s.sectionID || targetID == "" || targetID == s.sourceID {
		return d
	}
	sec, ok := d.Section(sectionID)
	if !ok {
		return d
	}

	ids := orderKeys(sec, s.grouped)
	from, to := indexOf(ids, s.sourceID), indexOf(ids, targetID)
	if from < 0 || to < 0 {
		return d
	}
	moved := ids[from]
	ids = append(ids[:from], ids[from+1:]...)
	ids = append(ids[:to], append([]string{moved}, ids[to:]...)...)
	return b.ReorderEntries(d, sectionID, ids, s.grouped)
}

// orderKeys lists entry ids, or group prefixes in ascending index order.
func orderKeys(s domain.Section, grouped bool) []string {
	var out []string
	if grouped {
		for _, i := range domain.GroupIndexes(s) {
			out = append(out, domain.GroupPrefix(s.Kind, i))
		}
		return out
	}
	for _, e := range s.Entries {
		out = append(out, e.ID)
	}
	return out
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
