package bignum

import (
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestMsgpackRoundTrip(t *testing.T) {
	for _, in := range []string{"0", "1", "-1", "65536", "-123456789012345678901234567890"} {
		x := MustParse(in)
		data, err := msgpack.Marshal(x)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", in, err)
		}
		var got BigInt
		if err := msgpack.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", in, err)
		}
		if !got.Equal(x) {
			t.Fatalf("round trip of %s gave %v", in, got)
		}
		assertReduced(t, in, got)
	}
}

func TestMsgpackNormalizesInput(t *testing.T) {
	data, err := msgpack.Marshal([]any{int8(-1), []uint16{0, 0}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got BigInt
	if err := msgpack.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !got.IsZero() || got.neg {
		t.Fatalf("decoded %s, want canonical zero", got.Dump())
	}
}

func TestMsgpackRejectsBadSign(t *testing.T) {
	data, err := msgpack.Marshal([]any{int8(0), []uint16{1}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got BigInt
	if err := msgpack.Unmarshal(data, &got); err == nil {
		t.Fatalf("Unmarshal accepted sign marker 0")
	}
}

func TestMsgpackInsideStruct(t *testing.T) {
	type record struct {
		Name  string
		Value BigInt
	}
	in := record{Name: "x", Value: MustParse("-98765432109876543210")}
	data, err := msgpack.Marshal(&in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out record
	if err := msgpack.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Name != in.Name || !out.Value.Equal(in.Value) {
		t.Fatalf("round trip = %+v, want %+v", out, in)
	}
}
