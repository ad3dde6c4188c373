package source

import (
	"bytes"
	"io"
	"testing"
)

func TestBufferSourceRead(t *testing.T) {
	src := NewBufferSource([]byte{0x01, 0x02, 0x03, 0x04})

	buf, off, err := src.Read(2)
	if err != nil {
		t.Fatalf("Read(2) failed: %v", err)
	}
	if !bytes.Equal(buf[off:off+2], []byte{0x01, 0x02}) {
		t.Errorf("Read(2) = %v, want [1 2]", buf[off:off+2])
	}

	buf, off, err = src.Read(2)
	if err != nil {
		t.Fatalf("Read(2) failed: %v", err)
	}
	if !bytes.Equal(buf[off:off+2], []byte{0x03, 0x04}) {
		t.Errorf("Read(2) = %v, want [3 4]", buf[off:off+2])
	}

	_, _, err = src.Read(1)
	if err != io.EOF {
		t.Errorf("Read past end = %v, want io.EOF", err)
	}
}

func TestBufferSourceExactFit(t *testing.T) {
	src := NewBufferSource([]byte{0x01})
	_, _, err := src.Read(1)
	if err != nil {
		t.Fatalf("Read(1) failed: %v", err)
	}
	if _, _, err := src.Read(1); err != io.EOF {
		t.Errorf("second Read(1) = %v, want io.EOF", err)
	}
}

func TestBufferSourceTooShort(t *testing.T) {
	src := NewBufferSource([]byte{0x01})
	if _, _, err := src.Read(2); err != io.EOF {
		t.Errorf("Read(2) on 1-byte buffer = %v, want io.EOF", err)
	}
}
