package binary

import (
	"bytes"
	"testing"
)

func TestWriterRoundTrip(t *testing.T) {
	var buf Buffer
	w := NewWriter(&buf)

	if err := w.WriteBytes([]byte("##DT")); err != nil {
		t.Fatalf("WriteBytes failed: %v", err)
	}
	if err := w.WriteZeros(4); err != nil {
		t.Fatalf("WriteZeros failed: %v", err)
	}
	if err := w.WriteUint64(0x1122334455667788); err != nil {
		t.Fatalf("WriteUint64 failed: %v", err)
	}
	if err := w.WriteUint16(0xABCD); err != nil {
		t.Fatalf("WriteUint16 failed: %v", err)
	}
	if err := w.WriteUint32(7); err != nil {
		t.Fatalf("WriteUint32 failed: %v", err)
	}
	if err := w.WriteFloat64(-1.25); err != nil {
		t.Fatalf("WriteFloat64 failed: %v", err)
	}
	if w.Pos() != 4+4+8+2+4+8 {
		t.Fatalf("unexpected position %d", w.Pos())
	}

	r := NewReader(bytes.NewReader(buf.Bytes()))
	sig, _ := r.ReadBytes(4)
	if string(sig) != "##DT" {
		t.Errorf("signature: got %q", sig)
	}
	r.Skip(4)
	if v, _ := r.ReadUint64(); v != 0x1122334455667788 {
		t.Errorf("uint64: got %#x", v)
	}
	if v, _ := r.ReadUint16(); v != 0xABCD {
		t.Errorf("uint16: got %#x", v)
	}
	if v, _ := r.ReadUint32(); v != 7 {
		t.Errorf("uint32: got %d", v)
	}
	if v, _ := r.ReadFloat64(); v != -1.25 {
		t.Errorf("float64: got %v", v)
	}
}

func TestWriterAtGrowsBuffer(t *testing.T) {
	var buf Buffer
	w := NewWriter(&buf)

	if err := w.At(100).WriteUint8(0x5A); err != nil {
		t.Fatalf("WriteUint8 failed: %v", err)
	}
	if len(buf.Bytes()) != 101 {
		t.Fatalf("expected 101 bytes, got %d", len(buf.Bytes()))
	}
	if buf.Bytes()[100] != 0x5A {
		t.Errorf("expected 0x5A at 100, got %#x", buf.Bytes()[100])
	}
	if w.Pos() != 0 {
		t.Errorf("At should not move the parent writer, got %d", w.Pos())
	}
}

func TestEngineFor(t *testing.T) {
	le := EngineFor(false)
	be := EngineFor(true)
	b := []byte{0x01, 0x02}
	if le.Uint16(b) != 0x0201 {
		t.Errorf("little endian: got %#x", le.Uint16(b))
	}
	if be.Uint16(b) != 0x0102 {
		t.Errorf("big endian: got %#x", be.Uint16(b))
	}
}
