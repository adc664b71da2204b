package dsum

import (
	"bytes"
	"context"
	"crypto/sha1"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// writeDeviceFile creates a regular file standing in for a block device.
func writeDeviceFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "device.img")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func readDigests(t *testing.T, path string, n int) [][]byte {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	if len(raw) != n*digestSize {
		t.Fatalf("output size = %d, want %d", len(raw), n*digestSize)
	}
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		out[i] = raw[i*digestSize : (i+1)*digestSize]
	}
	return out
}

func TestRunZeroDevice(t *testing.T) {
	const size = 1 << 20 // 1 MiB
	devPath := writeDeviceFile(t, make([]byte, size))
	outPath := filepath.Join(t.TempDir(), "out.bin")

	cfg := RunConfig{
		DevicePath:  devPath,
		OutputPath:  outPath,
		ChunkAlign:  1024,
		IOBlockSize: 65536,
		noDirectIO:  true,
	}

	if err := Run(context.Background(), cfg, io.Discard); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := sha1.Sum(make([]byte, 1024))
	digests := readDigests(t, outPath, size/1024)
	for i, d := range digests {
		if !bytes.Equal(d, want[:]) {
			t.Fatalf("chunk %d = %x, want %x", i, d, want)
		}
	}
}

func TestRunConstantByteDeviceSingleChunk(t *testing.T) {
	const size = 64 * 1024
	data := bytes.Repeat([]byte{0xAA}, size)
	devPath := writeDeviceFile(t, data)
	outPath := filepath.Join(t.TempDir(), "out.bin")

	cfg := RunConfig{
		DevicePath:  devPath,
		OutputPath:  outPath,
		ChunkAlign:  65536,
		IOBlockSize: 65536,
		ThreadCount: 1,
		QueueDepth:  1,
		noDirectIO:  true,
	}

	if err := Run(context.Background(), cfg, io.Discard); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := sha1.Sum(data)
	digests := readDigests(t, outPath, 1)
	if !bytes.Equal(digests[0], want[:]) {
		t.Fatalf("digest = %x, want %x", digests[0], want)
	}
}

func TestRunOffsetPatternDeviceMatchesManualHashes(t *testing.T) {
	const size = 4 << 20 // 4 MiB
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i & 0xFF)
	}
	devPath := writeDeviceFile(t, data)
	outPath := filepath.Join(t.TempDir(), "out.bin")

	cfg := RunConfig{
		DevicePath:  devPath,
		OutputPath:  outPath,
		ChunkAlign:  4096,
		IOBlockSize: 65536,
		ThreadCount: 4,
		QueueDepth:  16,
		noDirectIO:  true,
	}

	if err := Run(context.Background(), cfg, io.Discard); err != nil {
		t.Fatalf("Run: %v", err)
	}

	const chunks = size / 4096
	digests := readDigests(t, outPath, chunks)
	for i := 0; i < chunks; i++ {
		want := sha1.Sum(data[i*4096 : (i+1)*4096])
		if !bytes.Equal(digests[i], want[:]) {
			t.Fatalf("chunk %d = %x, want %x", i, digests[i], want)
		}
	}
}

func TestRunIsDeterministicAcrossRepeatedRuns(t *testing.T) {
	const size = 4 << 20
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i & 0xFF)
	}
	devPath := writeDeviceFile(t, data)

	run := func() [][]byte {
		outPath := filepath.Join(t.TempDir(), "out.bin")
		cfg := RunConfig{
			DevicePath:  devPath,
			OutputPath:  outPath,
			ChunkAlign:  4096,
			IOBlockSize: 65536,
			ThreadCount: 4,
			QueueDepth:  16,
			noDirectIO:  true,
		}
		if err := Run(context.Background(), cfg, io.Discard); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return readDigests(t, outPath, size/4096)
	}

	first := run()
	second := run()

	if len(first) != len(second) {
		t.Fatalf("digest count differs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !bytes.Equal(first[i], second[i]) {
			t.Fatalf("chunk %d differs between runs: %x vs %x", i, first[i], second[i])
		}
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	devPath := writeDeviceFile(t, make([]byte, 4096))
	outPath := filepath.Join(t.TempDir(), "out.bin")

	cfg := RunConfig{
		DevicePath: devPath,
		OutputPath: outPath,
		// ChunkAlign intentionally left zero.
		noDirectIO: true,
	}

	if err := Run(context.Background(), cfg, io.Discard); err == nil {
		t.Fatal("Run: expected error for missing ChunkAlign, got nil")
	}
}
