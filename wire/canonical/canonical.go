// Package canonical implements the byte-stable encoding used for every
// wire payload and for the AuthoritativeConfig content hash (§4.L
// "Canonical serialization"). Encoding rules: length-prefixed keys in
// sorted order for maps, little-endian for fixed-width integers. Two
// encodings of equal values must produce byte-identical output.
package canonical

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
)

// Encoder accumulates canonical bytes. It is a thin helper over a byte
// buffer; callers choose which primitives to write and in which order,
// which is what makes the result "declared order" rather than reflection-
// order (map iteration order in Go is randomized, so every map write goes
// through WriteStringSlice / WriteSortedMap below).
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder { return &Encoder{} }

func (e *Encoder) Bytes() []byte { return e.buf }

func (e *Encoder) WriteUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) WriteInt(v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) WriteFloat(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) WriteBytes(b []byte) {
	e.WriteInt(int64(len(b)))
	e.buf = append(e.buf, b...)
}

func (e *Encoder) WriteString(s string) {
	e.WriteBytes([]byte(s))
}

func (e *Encoder) WriteStringSlice(ss []string) {
	cp := append([]string(nil), ss...)
	sort.Strings(cp)
	e.WriteInt(int64(len(cp)))
	for _, s := range cp {
		e.WriteString(s)
	}
}

// WriteSortedMap writes a string-keyed map with keys sorted ascending,
// each entry as (key, value) length-prefixed pairs.
func WriteSortedMap[V any](e *Encoder, m map[string]V, encodeValue func(*Encoder, V)) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	e.WriteInt(int64(len(keys)))
	for _, k := range keys {
		e.WriteString(k)
		encodeValue(e, m[k])
	}
}

// MustEncode canonically encodes any value by marshaling it to JSON
// (which sorts map keys by default for map[string]T) and returns the JSON
// bytes without a length prefix; callers that need one write the result
// with Encoder.WriteBytes. This is the fallback used for structured
// config sections where writing bespoke field-by-field encoders for every
// table would not add determinism beyond what encoding/json already
// guarantees for map[string]T keys; it is never used for the wire
// envelope itself, which always uses the field-by-field Encoder.
func MustEncode(v any) []byte {
	normalizeMaps(reflect.ValueOf(v))
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("canonical: marshal: %w", err))
	}
	return b
}

// normalizeMaps is a no-op placeholder kept explicit: encoding/json
// already emits map[string]V keys in sorted order, so no reflection-based
// reordering is required. The function exists so future non-string-keyed
// maps in config sections fail loudly in review rather than silently
// producing nondeterministic bytes.
func normalizeMaps(v reflect.Value) {}
