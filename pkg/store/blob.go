package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/dayplan/pkg/task"
)

// ErrBlobNotFound is returned when a ref has no spooled payload.
var ErrBlobNotFound = errors.New("store: blob not found")

// Spool keeps attachment payloads out of the task records. Task attachments
// only carry the ref returned by Put.
type Spool struct {
	d        *diskv.Diskv
	basePath string
	owned    bool
}

// OpenSpool roots a spool at dir. An empty dir creates a private temp
// directory that Close removes.
func OpenSpool(dir string) (*Spool, error) {
	owned := false
	if dir == "" {
		tmp, err := os.MkdirTemp("", "dayplan-spool-")
		if err != nil {
			return nil, fmt.Errorf("store: create spool dir: %w", err)
		}
		dir, owned = tmp, true
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure spool dir: %w", err)
	}
	return &Spool{
		d: diskv.New(diskv.Options{
			BasePath:          dir,
			AdvancedTransform: refToPathTransform,
			InverseTransform:  pathToRefTransform,
			CacheSizeMax:      4 * 1024 * 1024, // 4MB
		}),
		basePath: dir,
		owned:    owned,
	}, nil
}

// BasePath is the directory holding the payloads.
func (s *Spool) BasePath() string {
	return s.basePath
}

// Put stores data and returns its ref.
func (s *Spool) Put(data []byte) (string, error) {
	ref := task.NewID()
	if err := s.d.Write(ref, data); err != nil {
		return "", fmt.Errorf("store: spool write: %w", err)
	}
	return ref, nil
}

// Get returns the payload for ref.
func (s *Spool) Get(ref string) ([]byte, error) {
	if ref == "" || !s.d.Has(ref) {
		return nil, ErrBlobNotFound
	}
	data, err := s.d.Read(ref)
	if err != nil {
		return nil, fmt.Errorf("store: spool read: %w", err)
	}
	return data, nil
}

// Delete drops ref. Unknown refs are ignored.
func (s *Spool) Delete(ref string) error {
	if ref == "" || !s.d.Has(ref) {
		return nil
	}
	return s.d.Erase(ref)
}

// Release drops every ref in refs that is not still held by the store.
// Rollover clones share refs with their originals, so a purged original must
// not take the clone's payload with it.
func (s *Spool) Release(st *Store, refs ...string) error {
	held := st.Refs()
	var errs []error
	for _, ref := range refs {
		if _, ok := held[ref]; ok {
			continue
		}
		if err := s.Delete(ref); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close removes the spool directory when the spool created it.
func (s *Spool) Close() error {
	if !s.owned {
		return nil
	}
	return os.RemoveAll(s.basePath)
}

func refToPathTransform(ref string) *diskv.PathKey {
	if len(ref) < 2 {
		return &diskv.PathKey{FileName: ref}
	}
	return &diskv.PathKey{
		Path:     []string{ref[:2]},
		FileName: ref,
	}
}

func pathToRefTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
