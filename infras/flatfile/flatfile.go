// Package flatfile provides locked access to the newline-delimited entity
// files. Reads take a shared lock, writes an exclusive lock, so no read ever
// observes a half-written file and no two writes interleave. The locks are
// per operation only: the read-modify-write sequence of an update is not
// atomic across operations, and two concurrent updates can last-writer-win on
// the whole file. That limitation is part of the storage contract.
package flatfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"rental/config"
)

// Dir hands out one shared File handle per backing file so every repository
// in the process contends on the same lock.
type Dir struct {
	path  string
	mu    sync.Mutex
	files map[string]*File
}

func NewDir(cfg *config.Config) *Dir {
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Data.Dir).Msg("Failed to create data directory")
	}

	log.Info().Str("dir", cfg.Data.Dir).Msg("Data directory ready")

	return &Dir{
		path:  cfg.Data.Dir,
		files: make(map[string]*File),
	}
}

// File returns the shared handle for a backing file, creating the file empty
// on first access.
func (d *Dir) File(name string) *File {
	d.mu.Lock()
	defer d.mu.Unlock()

	if file, ok := d.files[name]; ok {
		return file
	}

	file := &File{path: filepath.Join(d.path, name)}
	if err := file.ensure(); err != nil {
		log.Error().Err(err).Str("file", name).Msg("Failed to create backing file")
	}

	d.files[name] = file

	return file
}

// File is one newline-delimited backing file.
type File struct {
	path string
	mu   sync.RWMutex
}

func (f *File) Path() string {
	return f.path
}

func (f *File) ensure() error {
	_, err := os.Stat(f.path)
	if err == nil {
		return nil
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", f.path, err)
	}

	handle, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", f.path, err)
	}

	return handle.Close()
}

// ReadLines returns every line of the file in order under a shared lock.
func (f *File) ReadLines() (lines []string, err error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	handle, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer func() {
		if closeErr := handle.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", f.path, closeErr)
		}
	}()

	scanner := bufio.NewScanner(handle)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	return lines, nil
}

// WriteLines atomically replaces the full file contents under an exclusive
// lock. The new contents land in a temp file first and are renamed over the
// original, so a crash mid-write never leaves a truncated file behind.
func (f *File) WriteLines(lines []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", f.path, err)
	}

	writer := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())

			return fmt.Errorf("write %s: %w", f.path, err)
		}
	}

	if err := writer.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("flush %s: %w", f.path, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("close temp for %s: %w", f.path, err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("replace %s: %w", f.path, err)
	}

	return nil
}

// AppendLine adds one line to the end of the file under an exclusive lock.
func (f *File) AppendLine(line string) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	handle, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.path, err)
	}
	defer func() {
		if closeErr := handle.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", f.path, closeErr)
		}
	}()

	if _, err := handle.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("append %s: %w", f.path, err)
	}

	return nil
}
