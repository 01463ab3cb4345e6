package collection

import "testing"

type thing struct {
	id   string
	name string
}

func (t thing) Identity() string { return t.id }

func TestAppendKeepsOrderAndUniqueness(t *testing.T) {
	c := NewIdentified[thing]()
	c.Append(thing{id: "a", name: "one"})
	c.Append(thing{id: "b", name: "two"})
	c.Append(thing{id: "a", name: "one again"})

	if c.Len() != 2 {
		t.Fatalf("expected 2 elements, got %d", c.Len())
	}
	all := c.All()
	if all[0].id != "a" || all[1].id != "b" {
		t.Fatalf("unexpected order %v", all)
	}
	if all[0].name != "one again" {
		t.Fatalf("duplicate append should replace in place")
	}
}

func TestInsertHead(t *testing.T) {
	c := NewIdentified[thing]()
	c.Append(thing{id: "a"})
	c.InsertHead(thing{id: "b"})

	all := c.All()
	if all[0].id != "b" || all[1].id != "a" {
		t.Fatalf("unexpected order %v", all)
	}
}

func TestRemoveIdempotent(t *testing.T) {
	c := NewIdentified[thing]()
	c.Append(thing{id: "a"})

	if !c.Remove("a") {
		t.Fatalf("expected removal")
	}
	if c.Remove("a") {
		t.Fatalf("second removal should be a no-op")
	}
	if c.Remove("never-there") {
		t.Fatalf("removing an absent id should be a no-op")
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty collection")
	}
}

func TestUpdateAbsentIsNoOp(t *testing.T) {
	c := NewIdentified[thing]()
	if c.Update(thing{id: "ghost"}) {
		t.Fatalf("update of absent id should report false")
	}
	c.Append(thing{id: "a", name: "old"})
	if !c.Update(thing{id: "a", name: "new"}) {
		t.Fatalf("expected update")
	}
	got, _ := c.Get("a")
	if got.name != "new" {
		t.Fatalf("expected updated element, got %q", got.name)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := NewIdentified[thing]()
	c.Append(thing{id: "a"})
	d := c.Clone()
	d.Remove("a")
	if c.Len() != 1 || d.Len() != 0 {
		t.Fatalf("clone should not share structure")
	}
}
