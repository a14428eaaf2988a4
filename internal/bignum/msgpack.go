package bignum

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ msgpack.CustomEncoder = BigInt{}
	_ msgpack.CustomDecoder = (*BigInt)(nil)
)

// EncodeMsgpack encodes x as the array [sign, [words...]], with sign +1 or
// -1 and words least significant first.
func (x BigInt) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	sign := int8(1)
	if x.neg {
		sign = -1
	}
	if err := enc.EncodeInt8(sign); err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(len(x.mag)); err != nil {
		return err
	}
	for _, w := range x.mag {
		if err := enc.EncodeUint16(uint16(w)); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack decodes the form written by EncodeMsgpack. Redundant
// leading zero words are dropped.
func (x *BigInt) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != 2 {
		return fmt.Errorf("bignum: msgpack: expected 2 fields, got %d", n)
	}
	sign, err := dec.DecodeInt8()
	if err != nil {
		return err
	}
	if sign != 1 && sign != -1 {
		return fmt.Errorf("bignum: msgpack: invalid sign marker %d", sign)
	}
	count, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	words := make([]Word, 0, max(count, 0))
	for range count {
		w, err := dec.DecodeUint16()
		if err != nil {
			return err
		}
		words = append(words, Word(w))
	}
	*x = makeInt(words, sign < 0)
	return nil
}
