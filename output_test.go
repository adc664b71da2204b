package dsum

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestOutputMapWriteDigestPlacement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.bin")

	const chunks = 4
	om, err := newOutputMap(path, chunks*digestSize)
	if err != nil {
		t.Fatalf("newOutputMap: %v", err)
	}

	digest := bytes.Repeat([]byte{0xAB}, digestSize)
	om.writeDigest(2, digest)

	if err := om.close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Read the file back directly: newOutputMap always truncates, so
	// reopening through it would discard what was just written.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	got := data[2*digestSize : 3*digestSize]
	if !bytes.Equal(got, digest) {
		t.Errorf("slot 2 = %x, want %x", got, digest)
	}
	for i := 0; i < chunks; i++ {
		if i == 2 {
			continue
		}
		slot := data[i*digestSize : (i+1)*digestSize]
		if !bytes.Equal(slot, make([]byte, digestSize)) {
			t.Errorf("slot %d not zero: %x", i, slot)
		}
	}
}

func TestOutputMapZeroSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	om, err := newOutputMap(path, 0)
	if err != nil {
		t.Fatalf("newOutputMap(size=0): %v", err)
	}
	if err := om.close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
