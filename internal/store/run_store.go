package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mohannedbt/creator-growth-lab/internal/model"
)

var (
	// ErrNotFound means the reference does not resolve to a stored run.
	ErrNotFound = errors.New("run not found")
	// ErrUnreadableRecord means the file exists but does not decode into a
	// complete run record.
	ErrUnreadableRecord = errors.New("run record unreadable")
)

// RunStore persists one JSON file per analysis run in a flat directory.
// Files are written once and never mutated; the analytics API may write the
// same directory, so listing is a point-in-time, best-effort snapshot.
type RunStore struct {
	dir string
}

// NewRunStore creates a store rooted at dir. The directory is created lazily
// by List/Save, so constructing a store is side-effect free.
func NewRunStore(dir string) *RunStore {
	return &RunStore{dir: dir}
}

// Dir returns the store's root directory (for health checks).
func (s *RunStore) Dir() string {
	return s.dir
}

// List returns all readable runs, newest first by generated_at. Files that
// don't decode, or records missing their meta/kpis sections, are skipped:
// one corrupt run must never hide the others. Only directory-level failures
// propagate.
func (s *RunStore) List(ctx context.Context) ([]model.RunListItem, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure results dir: %w", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read results dir: %w", err)
	}

	items := make([]model.RunListItem, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		rec, err := s.decodeFile(e.Name())
		if err != nil {
			continue
		}
		items = append(items, rec.ListItem(e.Name()))
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].GeneratedAt.Equal(items[j].GeneratedAt) {
			return items[i].GeneratedAt.After(items[j].GeneratedAt)
		}
		return items[i].Ref > items[j].Ref
	})
	return items, nil
}

// Read returns the full record for a caller-supplied reference. The
// reference is reduced to its base name before lookup, so it can never
// escape the store directory. Returns ErrNotFound for a missing file and
// ErrUnreadableRecord for an existing file that fails to decode.
func (s *RunStore) Read(ctx context.Context, ref string) (*model.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := sanitizeRef(ref)
	if name == "" {
		return nil, ErrNotFound
	}

	rec, err := s.decodeFile(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnreadableRecord, name)
	}
	return rec, nil
}

// Save persists a record under {channel_id}_{timestamp}.json and returns
// the new reference. Records are write-once: an already-existing file is an
// error, never an overwrite.
func (s *RunStore) Save(ctx context.Context, rec *model.RunRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure results dir: %w", err)
	}

	ts := rec.Meta.GeneratedAt.UTC().Format("20060102T150405Z")
	name := fmt.Sprintf("%s_%s.json", rec.Meta.ChannelID, ts)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode run record: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create run file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write run file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close run file: %w", err)
	}
	return name, nil
}

// decodeFile reads and decodes one record by file name (already sanitized).
func (s *RunStore) decodeFile(name string) (*model.RunRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	return decodeRecord(data)
}

// decodeRecord decodes a record and rejects ones missing the required
// meta/kpis sections. Optional sections default to empty.
func decodeRecord(data []byte) (*model.RunRecord, error) {
	var probe struct {
		Meta *model.MetaInfo `json:"meta"`
		Kpis *model.Kpis     `json:"kpis"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	if probe.Meta == nil || probe.Kpis == nil {
		return nil, errors.New("missing meta or kpis section")
	}

	var rec model.RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// sanitizeRef strips any path components from a caller-supplied reference.
// Both separator styles are treated as separators regardless of platform,
// so "..\\..\\x" and "../../x" both reduce to their base name.
func sanitizeRef(ref string) string {
	ref = strings.ReplaceAll(ref, "\\", "/")
	name := filepath.Base(ref)
	if name == "." || name == ".." || name == "/" || name == "" {
		return ""
	}
	return name
}
