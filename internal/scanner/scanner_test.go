package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"hdrgroup/internal/testsupport"
)

func TestScanFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"IMG_0010.JPG", "IMG_0002.jpg", "notes.txt", ".hidden.jpg", "IMG_0003.jpeg"} {
		testsupport.WriteFile(t, filepath.Join(dir, name), 16)
	}
	testsupport.WriteFile(t, filepath.Join(dir, "sub", "IMG_0001.jpg"), 16)

	got, err := Scan(dir, Options{Extensions: []string{".jpg", ".jpeg"}})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "IMG_0002.jpg"),
		filepath.Join(dir, "IMG_0003.jpeg"),
		filepath.Join(dir, "IMG_0010.JPG"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Scan() = %v, want %v", got, want)
	}
}

func TestScanRecursive(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "b.jpg"), 1)
	testsupport.WriteFile(t, filepath.Join(dir, "a", "c.jpg"), 1)
	testsupport.WriteFile(t, filepath.Join(dir, ".cache", "d.jpg"), 1)

	got, err := Scan(dir, Options{Extensions: []string{".jpg"}, Recursive: true})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	want := []string{filepath.Join(dir, "a", "c.jpg"), filepath.Join(dir, "b.jpg")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Scan() = %v, want %v", got, want)
	}
}

func TestScanRejectsFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.jpg")
	testsupport.WriteFile(t, path, 1)
	if _, err := Scan(path, Options{}); !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory, got %v", err)
	}
	if _, err := Scan(filepath.Join(t.TempDir(), "missing"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestShoots(t *testing.T) {
	parent := t.TempDir()
	for _, name := range []string{"2024-06-02", "2024-06-01", ".trash"} {
		if err := os.MkdirAll(filepath.Join(parent, name), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	testsupport.WriteFile(t, filepath.Join(parent, "loose.jpg"), 1)

	got, err := Shoots(parent)
	if err != nil {
		t.Fatalf("Shoots returned error: %v", err)
	}
	want := []string{filepath.Join(parent, "2024-06-01"), filepath.Join(parent, "2024-06-02")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Shoots() = %v, want %v", got, want)
	}
}
