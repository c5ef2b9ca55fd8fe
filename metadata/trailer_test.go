package metadata

import (
	"bytes"
	"errors"
	"testing"
)

func TestLocate_InsufficientData(t *testing.T) {
	for _, code := range [][]byte{nil, {}, {0x33}} {
		_, err := Locate(code)
		if err == nil {
			t.Fatalf("Locate(%x): expected error", code)
		}
		var e *Error
		if !errors.As(err, &e) {
			t.Fatalf("expected structured *metadata.Error, got %T", err)
		}
		if e.Kind != KindInsufficientData {
			t.Fatalf("expected KindInsufficientData, got %s", e.Kind)
		}
		if e.RuleID != RuleInsufficientData {
			t.Fatalf("expected RuleID %s, got %s", RuleInsufficientData, e.RuleID)
		}
	}
}

func TestLocate_TrailerOverrun(t *testing.T) {
	cases := [][]byte{
		{0x00, 0x01},
		{0xff, 0xff},
		{0x01, 0x02, 0x03, 0x00, 0x04},
	}
	for _, code := range cases {
		_, err := Locate(code)
		if !IsKind(err, KindTrailerOverrun) {
			t.Fatalf("Locate(%x): expected TrailerOverrun, got %v", code, err)
		}
		if RuleID(err) != RuleTrailerOverrun {
			t.Fatalf("Locate(%x): expected RuleID %s, got %s", code, RuleTrailerOverrun, RuleID(err))
		}
	}
}

func TestLocate_Range(t *testing.T) {
	code := []byte{0xde, 0xad, 0xa0, 0xbe, 0xef, 0x00, 0x03}
	v, err := Locate(code)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if v.Start != 2 || v.End != 5 || v.Length != 3 {
		t.Fatalf("unexpected view: %+v", v)
	}
	if !bytes.Equal(v.Bytes(code), []byte{0xa0, 0xbe, 0xef}) {
		t.Fatalf("unexpected trailer bytes: %x", v.Bytes(code))
	}
}

func TestLocate_ExactFit(t *testing.T) {
	// The trailer may occupy the whole buffer in front of the length field.
	code := []byte{0xa0, 0x00, 0x01}
	v, err := Locate(code)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if v.Start != 0 || v.End != 1 {
		t.Fatalf("unexpected view: %+v", v)
	}
}

func TestLocate_ZeroLength(t *testing.T) {
	v, err := Locate([]byte{0x60, 0x80, 0x00, 0x00})
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if v.Length != 0 || v.Start != v.End || v.End != 2 {
		t.Fatalf("unexpected view: %+v", v)
	}
}

func TestSplit(t *testing.T) {
	code := []byte{0x60, 0x80, 0xfe, 0xa0, 0x00, 0x01}
	body, trailer, err := Split(code)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if !bytes.Equal(body, []byte{0x60, 0x80, 0xfe}) {
		t.Fatalf("body mismatch: %x", body)
	}
	if !bytes.Equal(trailer, []byte{0xa0}) {
		t.Fatalf("trailer mismatch: %x", trailer)
	}

	if _, _, err := Split([]byte{0x01}); !IsKind(err, KindInsufficientData) {
		t.Fatalf("expected InsufficientData, got %v", err)
	}
}

func FuzzLocate(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00, 0x00})
	f.Add([]byte{0xff, 0xff})
	f.Add([]byte{0xa0, 0x00, 0x01})
	f.Fuzz(func(t *testing.T, code []byte) {
		v, err := Locate(code)
		if err != nil {
			if !IsKind(err, KindInsufficientData) && !IsKind(err, KindTrailerOverrun) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			return
		}
		if v.Start < 0 || v.End > len(code) || v.End-v.Start != v.Length {
			t.Fatalf("view violates bounds: %+v (len %d)", v, len(code))
		}
		// Decoding must never panic either.
		_, _ = Decode(code)
	})
}
