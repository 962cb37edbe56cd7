package flatfile_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"rental/config"
	"rental/infras/flatfile"
)

func newTestDir(t *testing.T) (*flatfile.Dir, string) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Data.Dir = t.TempDir()

	return flatfile.NewDir(cfg), cfg.Data.Dir
}

func TestFileCreatedEmptyOnFirstAccess(t *testing.T) {
	dir, path := newTestDir(t)

	file := dir.File("vehicles.txt")

	info, err := os.Stat(file.Path())
	if err != nil {
		t.Fatalf("backing file was not created: %v", err)
	}

	if info.Size() != 0 {
		t.Errorf("new backing file has size %d, want 0", info.Size())
	}

	if file.Path() != filepath.Join(path, "vehicles.txt") {
		t.Errorf("Path() = %q", file.Path())
	}
}

func TestDirHandsOutSharedHandles(t *testing.T) {
	dir, _ := newTestDir(t)

	first := dir.File("bookings.txt")
	second := dir.File("bookings.txt")

	if first != second {
		t.Error("Dir returned two handles for the same backing file")
	}
}

func TestAppendLineAndReadLines(t *testing.T) {
	dir, _ := newTestDir(t)
	file := dir.File("bookings.txt")

	if err := file.AppendLine("first"); err != nil {
		t.Fatalf("AppendLine: %v", err)
	}

	if err := file.AppendLine("second"); err != nil {
		t.Fatalf("AppendLine: %v", err)
	}

	lines, err := file.ReadLines()
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}

	if len(lines) != 2 || lines[0] != "first" || lines[1] != "second" {
		t.Errorf("ReadLines = %v, want [first second]", lines)
	}
}

func TestWriteLinesReplacesContents(t *testing.T) {
	dir, _ := newTestDir(t)
	file := dir.File("bookings.txt")

	if err := file.AppendLine("stale"); err != nil {
		t.Fatalf("AppendLine: %v", err)
	}

	if err := file.WriteLines([]string{"fresh-1", "fresh-2"}); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}

	lines, err := file.ReadLines()
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}

	if len(lines) != 2 || lines[0] != "fresh-1" || lines[1] != "fresh-2" {
		t.Errorf("ReadLines = %v, want the rewritten contents", lines)
	}
}

func TestWriteLinesLeavesNoTempFiles(t *testing.T) {
	dir, path := newTestDir(t)
	file := dir.File("bookings.txt")

	if err := file.WriteLines([]string{"only"}); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}

		t.Errorf("data dir contains %v, want only the backing file", names)
	}
}

func TestConcurrentAppends(t *testing.T) {
	dir, _ := newTestDir(t)
	file := dir.File("bookings.txt")

	const writers = 20

	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if err := file.AppendLine("row"); err != nil {
				t.Errorf("AppendLine: %v", err)
			}
		}()
	}

	wg.Wait()

	lines, err := file.ReadLines()
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}

	if len(lines) != writers {
		t.Errorf("ReadLines returned %d lines, want %d", len(lines), writers)
	}
}
