package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRotatingWriterNoRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	rw, err := newRotatingWriter(path, RotationConfig{MaxSizeMB: 0})
	if err != nil {
		t.Fatalf("newRotatingWriter failed: %v", err)
	}
	defer rw.Close()

	data := strings.Repeat("x", 4096)
	for i := 0; i < 10; i++ {
		if _, err := rw.Write([]byte(data)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	// No backups should exist with rotation disabled.
	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Error("expected no backup file with rotation disabled")
	}
	if rw.CurrentSize() != int64(len(data)*10) {
		t.Errorf("CurrentSize = %d, want %d", rw.CurrentSize(), len(data)*10)
	}
}

func TestRotatingWriterRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	rw, err := newRotatingWriter(path, RotationConfig{MaxSizeMB: 1, MaxBackups: 2})
	if err != nil {
		t.Fatalf("newRotatingWriter failed: %v", err)
	}
	defer rw.Close()

	// Each write is half a megabyte; the third write crosses the limit.
	chunk := []byte(strings.Repeat("y", 512*1024))
	for i := 0; i < 3; i++ {
		if _, err := rw.Write(chunk); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("expected backup file after rotation: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("failed to stat live log: %v", err)
	}
	if info.Size() != int64(len(chunk)) {
		t.Errorf("live log size = %d, want %d", info.Size(), len(chunk))
	}
}

func TestRotatingWriterBackupLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	rw, err := newRotatingWriter(path, RotationConfig{MaxSizeMB: 1, MaxBackups: 1})
	if err != nil {
		t.Fatalf("newRotatingWriter failed: %v", err)
	}
	defer rw.Close()

	chunk := []byte(strings.Repeat("z", 600*1024))
	for i := 0; i < 6; i++ {
		if _, err := rw.Write(chunk); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("expected .1 backup: %v", err)
	}
	if _, err := os.Stat(path + ".2"); !os.IsNotExist(err) {
		t.Error("expected .2 backup to be pruned with MaxBackups=1")
	}
}

func TestRotatingWriterClosedWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	rw, err := newRotatingWriter(path, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("newRotatingWriter failed: %v", err)
	}

	if err := rw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := rw.Write([]byte("after close")); err == nil {
		t.Error("expected error writing to closed writer")
	}

	// Double close is a no-op.
	if err := rw.Close(); err != nil {
		t.Errorf("second Close returned error: %v", err)
	}
}
