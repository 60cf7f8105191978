package core

import (
	"reflect"
	"testing"
)

func TestFormStateLastWriteWins(t *testing.T) {
	f := NewFormState("tone")
	f = f.Set("tone", "playful")
	f = f.Set("tone", "formal")
	if got := f.Get("tone"); got != "formal" {
		t.Fatalf("Get = %q, want formal", got)
	}
}

func TestFormStateSetDoesNotMutate(t *testing.T) {
	before := NewFormState("income").Set("income", "100")
	after := before.Set("income", "200")
	if before.Get("income") != "100" || after.Get("income") != "200" {
		t.Fatalf("Set must return a new state: before=%q after=%q", before.Get("income"), after.Get("income"))
	}
	snap := after.Snapshot()
	snap["income"] = "tampered"
	if after.Get("income") != "200" {
		t.Fatalf("snapshot must be a copy")
	}
}

func TestFormStateFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{in: " 1500 ", want: 1500},
		{in: "", want: 0},
		{in: "abc", want: 0},
		{in: "NaN", want: 0},
		{in: "Infinity", want: 0},
		{in: "1e999", want: 0},
		{in: "12abc", want: 12},
		{in: "1,200", want: 1},
		{in: "1500$", want: 1500},
		{in: "-3.5kg", want: -3.5},
		{in: ".5", want: 0.5},
		{in: "2.", want: 2},
		{in: "1e3x", want: 1000},
		{in: "4e", want: 4},
		{in: "$40", want: 0},
		{in: "-", want: 0},
	}
	for _, tc := range cases {
		f := NewFormState("Rent").Set("Rent", tc.in)
		if got := f.Float("Rent"); got != tc.want {
			t.Fatalf("Float(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if got := NewFormState().Float("missing"); got != 0 {
		t.Fatalf("Float(missing) = %v, want 0", got)
	}
}

func TestFormStateList(t *testing.T) {
	f := NewFormState("features").Set("features", "bright, cordless ,dimmable")
	if got := f.List("features"); !reflect.DeepEqual(got, []string{"bright", "cordless", "dimmable"}) {
		t.Fatalf("List = %q", got)
	}
	if got := NewFormState("features").List("features"); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("blank List = %q, want one empty item", got)
	}
}

func TestFormStateResetKeepsFields(t *testing.T) {
	f := NewFormState("a", "b").Set("a", "x").Set("extra", "y").Reset()
	if !reflect.DeepEqual(f.Fields(), []string{"a", "b", "extra"}) {
		t.Fatalf("fields = %v", f.Fields())
	}
	for _, name := range f.Fields() {
		if f.Get(name) != "" {
			t.Fatalf("field %s not cleared", name)
		}
	}
}
