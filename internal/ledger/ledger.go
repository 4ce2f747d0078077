// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records which feed items have already been reported.
// The ledger is a UTF-8 text file with one identifier per line. It is read
// once when opened and only ever appended to afterwards.
package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Ledger is the in-memory set of processed identifiers backed by an
// append-only file.
type Ledger struct {
	path string
	seen map[string]struct{}
}

// Open loads the ledger at path. A missing file yields an empty ledger;
// the file is created on the first Append.
func Open(path string) (*Ledger, error) {
	l := &Ledger{path: path, seen: make(map[string]struct{})}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	// Lines are read whole; a corrupt overlong line must not make the
	// ledger unreadable.
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if id := strings.TrimSpace(line); id != "" {
			l.seen[id] = struct{}{}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ledger %s: %w", path, err)
		}
	}
	return l, nil
}

// Path returns the backing file path.
func (l *Ledger) Path() string { return l.path }

// Len returns the number of distinct identifiers recorded.
func (l *Ledger) Len() int { return len(l.seen) }

// Contains reports whether id has already been processed.
func (l *Ledger) Contains(id string) bool {
	_, ok := l.seen[id]
	return ok
}

// Append writes id to the ledger file and syncs it before returning, so a
// crash after Append never causes id to be processed again.
func (l *Ledger) Append(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("empty identifier")
	}
	if strings.ContainsAny(id, "\r\n") {
		return fmt.Errorf("identifier %q contains a line break", id)
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger for append: %w", err)
	}
	if _, err := f.WriteString(id + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("appending to ledger: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing ledger: %w", err)
	}

	l.seen[id] = struct{}{}
	return nil
}
