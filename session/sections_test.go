package session

import (
	"reflect"
	"testing"

	"github.com/eringen/pagesmith/page"
)

func idsOf(sections []page.Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.ID
	}
	return out
}

func list(ids ...string) []page.Section {
	out := make([]page.Section, len(ids))
	for i, id := range ids {
		out[i] = page.Section{ID: id, Type: page.SectionCustom, Order: i, IsVisible: true, Content: page.CustomContent{Title: id}}
	}
	return out
}

func TestMove(t *testing.T) {
	tests := []struct {
		from, to int
		want     []string
	}{
		{0, 2, []string{"b", "c", "a", "d"}},
		{3, 0, []string{"d", "a", "b", "c"}},
		{1, 1, []string{"a", "b", "c", "d"}},
		{1, 99, []string{"a", "c", "d", "b"}},
		{1, -5, []string{"b", "a", "c", "d"}},
		{9, 0, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		in := list("a", "b", "c", "d")
		got := Move(in, tt.from, tt.to)
		if !reflect.DeepEqual(idsOf(got), tt.want) {
			t.Errorf("Move(%d, %d) = %v, want %v", tt.from, tt.to, idsOf(got), tt.want)
		}
		for i, s := range got {
			if s.Order != i {
				t.Errorf("Move(%d, %d): %q order %d at %d", tt.from, tt.to, s.ID, s.Order, i)
			}
		}
		if !reflect.DeepEqual(idsOf(in), []string{"a", "b", "c", "d"}) {
			t.Error("Move modified its input")
		}
	}
}

func TestMoveByID(t *testing.T) {
	got := MoveByID(list("a", "b", "c"), "c", -1)
	if !reflect.DeepEqual(idsOf(got), []string{"a", "c", "b"}) {
		t.Errorf("got %v", idsOf(got))
	}
	if got := MoveByID(list("a"), "zz", 1); len(got) != 1 {
		t.Error("unknown id should leave the list alone")
	}
}

func TestToggleVisibility(t *testing.T) {
	in := list("a", "b")
	out := ToggleVisibility(in, "b")
	if out[1].IsVisible || !in[1].IsVisible {
		t.Error("toggle should flip a copy only")
	}
	if !reflect.DeepEqual(ToggleVisibility(out, "b"), in) {
		t.Error("double toggle is not the identity")
	}
}

func TestRemove(t *testing.T) {
	out := Remove(list("a", "b", "c"), "a")
	if !reflect.DeepEqual(idsOf(out), []string{"b", "c"}) || out[0].Order != 0 || out[1].Order != 1 {
		t.Errorf("Remove = %+v", out)
	}
}
