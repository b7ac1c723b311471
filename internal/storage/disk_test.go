package storage

import (
	"io"
	"strings"
	"testing"
)

func TestDiskSaveOpenRemove(t *testing.T) {
	disk, err := NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("new disk: %v", err)
	}

	storedName, size, err := disk.Save("deed.PDF", strings.NewReader("property deed"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len("property deed")) {
		t.Fatalf("size = %d, want %d", size, len("property deed"))
	}
	if !strings.HasSuffix(storedName, ".pdf") {
		t.Fatalf("stored name %q lost the extension", storedName)
	}
	if storedName == "deed.pdf" {
		t.Fatal("stored name must not be the original name")
	}

	rc, err := disk.Open(storedName)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil || string(data) != "property deed" {
		t.Fatalf("read back %q err=%v", data, err)
	}

	if err := disk.Remove(storedName); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := disk.Open(storedName); err == nil {
		t.Fatal("open after remove succeeded")
	}
	// removing again is tolerated
	if err := disk.Remove(storedName); err != nil {
		t.Fatalf("repeat remove: %v", err)
	}
}

func TestDiskSaveDistinctNames(t *testing.T) {
	disk, err := NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("new disk: %v", err)
	}

	a, _, err := disk.Save("photo.jpg", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("save a: %v", err)
	}
	b, _, err := disk.Save("photo.jpg", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("save b: %v", err)
	}
	if a == b {
		t.Fatal("two saves of the same name collided")
	}
}
