package session

import "github.com/eringen/pagesmith/page"

// The helpers below build the full replacement lists passed to
// UpdateSections. None of them modify their input.

// ToggleVisibility returns a copy of sections with the visibility of the
// section named id flipped. Unknown ids leave the list unchanged.
func ToggleVisibility(sections []page.Section, id string) []page.Section {
	out := page.CloneSections(sections)
	for i := range out {
		if out[i].ID == id {
			out[i].IsVisible = !out[i].IsVisible
		}
	}
	return out
}

// Move moves the section at position from to position to and reassigns
// every Order to its new index. to is clamped to the list bounds; an out of
// range from returns an unchanged copy.
func Move(sections []page.Section, from, to int) []page.Section {
	out := page.CloneSections(sections)
	if from < 0 || from >= len(out) {
		return out
	}
	to = max(0, min(to, len(out)-1))
	s := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]page.Section{s}, out[to:]...)...)
	return reindex(out)
}

// MoveByID shifts the section named id by delta positions.
func MoveByID(sections []page.Section, id string, delta int) []page.Section {
	i := IndexOf(sections, id)
	if i < 0 {
		return page.CloneSections(sections)
	}
	return Move(sections, i, i+delta)
}

// Remove drops the section named id and reindexes the rest so that orders
// stay contiguous.
func Remove(sections []page.Section, id string) []page.Section {
	out := make([]page.Section, 0, len(sections))
	for _, s := range sections {
		if s.ID != id {
			out = append(out, s.Clone())
		}
	}
	if len(out) == len(sections) {
		return out
	}
	return reindex(out)
}

// IndexOf returns the position of the section named id, or -1.
func IndexOf(sections []page.Section, id string) int {
	for i, s := range sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func reindex(sections []page.Section) []page.Section {
	for i := range sections {
		sections[i].Order = i
	}
	return sections
}
