// Package output collects generated sources and writes them to disk or
// compares them with what is already there.
package output

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/mark3labs/swagen/internal/logging"
)

// parallelism bounds concurrent file IO in Write and Verify.
const parallelism = 12

// File is one generated source.
type File struct {
	// Path is relative to the directory passed to Write or Verify, or
	// absolute.
	Path string
	Data []byte
	// Owner is the profile that produced the file.
	Owner string
}

// FS is an in-memory set of generated files. It is safe for concurrent
// use; files cannot be removed once added.
type FS struct {
	mu    sync.Mutex
	files map[string]*File
}

// New returns an empty FS.
func New() *FS {
	return &FS{files: map[string]*File{}}
}

// Add records a file. Two owners cannot claim the same path.
func (fs *FS) Add(owner, path string, data []byte) error {
	clean := filepath.Clean(path)
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if prev, ok := fs.files[clean]; ok {
		return errors.Newf("output: %s is produced by both %q and %q", clean, prev.Owner, owner)
	}
	fs.files[clean] = &File{Path: clean, Data: data, Owner: owner}
	return nil
}

// Files returns the files ordered by path.
func (fs *FS) Files() []File {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]File, 0, len(fs.files))
	for _, f := range fs.files {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Len returns the number of files.
func (fs *FS) Len() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.files)
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Write writes every file under dir. Each file is replaced atomically.
func (fs *FS) Write(ctx context.Context, dir string) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for _, f := range fs.Files() {
		f := f
		g.Go(func() error {
			path := resolve(dir, f.Path)
			if err := WriteFileAtomic(path, f.Data); err != nil {
				return err
			}
			logging.Logger.Infow("wrote file", "path", path, "bytes", len(f.Data), "profile", f.Owner)
			return nil
		})
	}
	return g.Wait()
}

// Verify compares every file with its counterpart under dir and reports
// each missing or differing file. IO failures other than a missing file
// abort verification.
func (fs *FS) Verify(ctx context.Context, dir string) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	var mu sync.Mutex
	var result *multierror.Error
	report := func(err error) {
		mu.Lock()
		result = multierror.Append(result, err)
		mu.Unlock()
	}

	for _, f := range fs.Files() {
		f := f
		g.Go(func() error {
			path := resolve(dir, f.Path)
			onDisk, err := os.ReadFile(path)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					report(errors.Newf("%s: generated file should exist, but does not", path))
					return nil
				}
				return errors.Wrapf(err, "%s: read", path)
			}
			if diff := cmp.Diff(string(onDisk), string(f.Data)); diff != "" {
				report(errors.Newf("%s would have changed:\n\n%s", path, diff))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "io error while verifying output")
	}
	if result != nil {
		sort.Slice(result.Errors, func(i, j int) bool {
			return result.Errors[i].Error() < result.Errors[j].Error()
		})
	}
	return result.ErrorOrNil()
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, creating parent directories as needed.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "ensure directory %s", dir)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-swagen-*")
	if err != nil {
		return errors.Wrapf(err, "create temp file for %s", path)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.Wrapf(err, "write %s", tmpPath)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrapf(err, "sync %s", tmpPath)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return errors.Wrapf(err, "chmod %s", tmpPath)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmpPath)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return errors.Wrapf(err, "rename %s to %s", tmpPath, path)
	}
	return nil
}
