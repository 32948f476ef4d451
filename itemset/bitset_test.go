package itemset

import "testing"

func TestBitsetInsertContains(t *testing.T) {
	s := NewBitset()
	if s.Contains(5) {
		t.Fatal("empty set contains 5")
	}
	if !s.Insert(5) {
		t.Fatal("Insert(5) on empty set should report newly added")
	}
	if s.Insert(5) {
		t.Fatal("Insert(5) twice should report no change")
	}
	if !s.Contains(5) {
		t.Fatal("set should contain 5 after Insert")
	}
	if s.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", s.Size())
	}
}

func TestBitsetCrossesWordBoundary(t *testing.T) {
	s := NewBitset()
	s.Insert(0)
	s.Insert(31)
	s.Insert(32)
	s.Insert(63)
	for _, id := range []int{0, 31, 32, 63} {
		if !s.Contains(id) {
			t.Errorf("set should contain %d", id)
		}
	}
	if s.Size() != 4 {
		t.Fatalf("Size() = %d, want 4", s.Size())
	}
}

func TestBitsetErase(t *testing.T) {
	s := NewBitset()
	s.Insert(10)
	if !s.Erase(10) {
		t.Fatal("Erase(10) should report it was present")
	}
	if s.Contains(10) {
		t.Fatal("set should not contain 10 after Erase")
	}
	if s.Erase(10) {
		t.Fatal("Erase(10) twice should report nothing erased")
	}
	if s.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", s.Size())
	}
}

func TestBitsetMerge(t *testing.T) {
	a := NewBitset()
	a.Insert(1)
	a.Insert(2)
	b := NewBitset()
	b.Insert(2)
	b.Insert(3)

	if !a.Merge(b) {
		t.Fatal("Merge should report a change")
	}
	if a.Merge(b) {
		t.Fatal("Merge of an already-merged set should report no change")
	}
	for _, id := range []int{1, 2, 3} {
		if !a.Contains(id) {
			t.Errorf("merged set should contain %d", id)
		}
	}
}

func TestBitsetEqualIgnoresTrailingZeroWords(t *testing.T) {
	a := NewBitset()
	a.Insert(1)
	b := NewBitset()
	b.Insert(1)
	b.Insert(40)
	b.Erase(40)

	if !a.Equal(b) {
		t.Fatal("sets differing only in trailing zero words should be equal")
	}
}

func TestBitsetClone(t *testing.T) {
	a := NewBitset()
	a.Insert(1)
	c := a.Clone()
	c.Insert(2)

	if a.Contains(2) {
		t.Fatal("clone mutation should not affect the original")
	}
	if !c.Contains(1) || !c.Contains(2) {
		t.Fatal("clone should contain both the original and new members")
	}
}

func TestBitsetEachAscending(t *testing.T) {
	s := NewBitset()
	for _, id := range []int{40, 3, 17, 0} {
		s.Insert(id)
	}
	var got []int
	s.Each(func(id int) { got = append(got, id) })
	want := []int{0, 3, 17, 40}
	if len(got) != len(want) {
		t.Fatalf("Each() visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Each() order = %v, want %v", got, want)
		}
	}
}
