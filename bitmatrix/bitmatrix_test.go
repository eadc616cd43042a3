package bitmatrix

import "testing"

func TestWordsForBits(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 31: 1, 32: 1, 33: 2, 64: 2, 65: 3}
	for bits, want := range cases {
		if got := WordsForBits(bits); got != want {
			t.Errorf("WordsForBits(%d) = %d, want %d", bits, got, want)
		}
	}
}

func TestSetGetMSBFirst(t *testing.T) {
	m, err := New(1, 40)
	if err != nil {
		t.Fatal(err)
	}
	m.Set(0, 0)
	m.Set(0, 31)
	m.Set(0, 32)

	if m.Row(0)[0] != 0x80000001 {
		t.Errorf("word 0 = %#x, want %#x (bit 0 and bit 31 MSB-first)", m.Row(0)[0], 0x80000001)
	}
	if m.Row(0)[1] != 0x80000000 {
		t.Errorf("word 1 = %#x, want %#x", m.Row(0)[1], 0x80000000)
	}
	for _, col := range []int{0, 31, 32} {
		if !m.Get(0, col) {
			t.Errorf("Get(0, %d) = false, want true", col)
		}
	}
	if m.Get(0, 1) {
		t.Error("Get(0, 1) = true, want false")
	}
}

func TestBulkOps(t *testing.T) {
	a, _ := New(2, 32)
	b, _ := New(2, 32)
	a.Set(0, 0)
	b.Set(0, 1)
	b.Set(1, 0)

	Or(a.Words(), b.Words())
	if !a.Get(0, 0) || !a.Get(0, 1) || !a.Get(1, 0) {
		t.Error("Or did not set expected bits")
	}

	And(a.Words(), b.Words())
	if a.Get(0, 0) {
		t.Error("And should have cleared bit (0,0), absent from b")
	}
	if !a.Get(0, 1) || !a.Get(1, 0) {
		t.Error("And should have kept bits present in both a and b")
	}

	Not(a.Words())
	if a.Get(0, 1) || a.Get(1, 0) {
		t.Error("Not should have cleared the previously-set bits")
	}
	if !a.Get(0, 0) {
		t.Error("Not should have set the previously-clear bit")
	}
}

func TestChecksumDeterministic(t *testing.T) {
	a, _ := New(3, 70)
	b, _ := New(3, 70)
	a.Set(1, 40)
	b.Set(1, 40)
	if a.Checksum() != b.Checksum() {
		t.Error("identical matrices should have identical checksums")
	}
	b.Set(2, 0)
	if a.Checksum() == b.Checksum() {
		t.Error("differing matrices should (overwhelmingly likely) have different checksums")
	}
}

func TestStringShape(t *testing.T) {
	m, _ := New(2, 33)
	s := m.String()
	lines := 0
	for _, c := range s {
		if c == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Errorf("String() produced %d lines, want 2", lines)
	}
}
