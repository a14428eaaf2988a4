package hashmix

import "testing"

func TestBuilderOrderSensitive(t *testing.T) {
	a := new(Builder).WriteUint64(1).WriteUint64(2).Sum64()
	b := new(Builder).WriteUint64(2).WriteUint64(1).Sum64()
	if a == b {
		t.Fatalf("digest of (1,2) equals digest of (2,1): %#x", a)
	}
}

func TestBuilderDeterministic(t *testing.T) {
	a := New(7).WriteString("bigword").WriteInt(-1).Sum64()
	b := New(7).WriteString("bigword").WriteInt(-1).Sum64()
	if a != b {
		t.Fatalf("same writes gave %#x and %#x", a, b)
	}
}

func TestBuilderFirstRound(t *testing.T) {
	// Mixing a zero state leaves it zero, so the first write is the value itself.
	if got := new(Builder).WriteUint64(0xabc).Sum64(); got != 0xabc {
		t.Fatalf("first write = %#x, want 0xabc", got)
	}
	var b Builder
	b.WriteUint64(1)
	b.WriteUint64(0)
	// 1 ^ 1<<13 = 0x2001; ^ >>7 = 0x2001 ^ 0x40 = 0x2041; ^ <<17.
	want := uint64(0x2041)
	want ^= want << 17
	if got := b.Sum64(); got != want {
		t.Fatalf("second round = %#x, want %#x", got, want)
	}
	b.Reset()
	if b.Sum64() != 0 {
		t.Fatalf("Reset left %#x", b.Sum64())
	}
}
