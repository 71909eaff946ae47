// Package stamp records emitted metadata together with a fingerprint of the
// files it depends on, so an unchanged tree reuses the first result instead
// of running the inspectors again.
package stamp

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"syscall"

	"template-go/internal/model"
)

// stampVersion guards the on-disk layout.
const stampVersion = 1

// Stamp is the on-disk record.
type Stamp struct {
	Version     int             `json:"version"`
	Fingerprint string          `json:"fingerprint"`
	Metadata    *model.Metadata `json:"metadata"`
}

// Fingerprint hashes inputs together with the path and content of every
// watched file. Watched directories contribute every regular file below
// them. A missing file contributes a distinct marker, so creating or
// deleting a watched file changes the fingerprint too.
func Fingerprint(paths []string, inputs string) (string, error) {
	files, err := expand(paths)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	fmt.Fprintf(h, "%d\x00%s\x00", len(inputs), inputs)
	for _, p := range files {
		fmt.Fprintf(h, "%s\x00", p)

		data, err := os.ReadFile(p)
		switch {
		case isAbsent(err):
			h.Write([]byte("absent\x00"))
		case err != nil:
			return "", fmt.Errorf("failed to read watched file %s: %w", p, err)
		default:
			fmt.Fprintf(h, "%d\x00", len(data))
			h.Write(data)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// expand replaces watched directories by the regular files below them and
// sorts the result.
func expand(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			files = append(files, p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk watched directory %s: %w", p, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// isAbsent reports whether err means the file is not there. A path through
// a regular file, such as <worktree>/.git/HEAD, counts as absent.
func isAbsent(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// Load reads a stamp and returns its metadata when the fingerprint of inputs
// and the recorded watch list still matches. ok is false when the stamp is missing,
// unreadable, corrupt or stale.
func Load(path, inputs string) (meta *model.Metadata, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read stamp: %w", err)
	}

	var s Stamp
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, false, fmt.Errorf("failed to parse stamp: %w", err)
	}
	if s.Version != stampVersion || s.Metadata == nil {
		return nil, false, nil
	}

	current, err := Fingerprint(s.Metadata.Watch, inputs)
	if err != nil {
		return nil, false, err
	}
	if current != s.Fingerprint {
		return nil, false, nil
	}
	return s.Metadata, true, nil
}

// Save records meta with the fingerprint of inputs and its watch list.
// inputs identifies everything besides the watched files that shaped meta.
func Save(path, inputs string, meta *model.Metadata) error {
	fp, err := Fingerprint(meta.Watch, inputs)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(Stamp{Version: stampVersion, Fingerprint: fp, Metadata: meta}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode stamp: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create stamp directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write stamp: %w", err)
	}
	return nil
}
