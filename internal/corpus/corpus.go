// Package corpus enumerates benchmark input files from a directory
// tree. Enumeration is deterministic (lexicographic path order) so
// repeated runs with the same parameters measure the same files in the
// same order.
package corpus

import (
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// File describes one corpus input.
type File struct {
	Path   string
	Size   int64
	Format string // lowercase extension without the dot, e.g. "png"
}

type options struct {
	extensions map[string]struct{}
	fraction   float64
	logger     *slog.Logger
}

// Option configures a Walker.
type Option func(*options)

// WithExtensions restricts enumeration to files with one of the given
// extensions (with or without a leading dot, case-insensitive).
func WithExtensions(exts ...string) Option {
	return func(o *options) {
		if len(exts) == 0 {
			return
		}
		if o.extensions == nil {
			o.extensions = make(map[string]struct{})
		}
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimPrefix(ext, "."))
			o.extensions[ext] = struct{}{}
		}
	}
}

// WithFraction selects a deterministic, evenly-spaced subset of the
// corpus. For a fraction f in (0,1] over n files, ceil(f*n) files are
// chosen. Values outside (0,1] are ignored.
func WithFraction(f float64) Option {
	return func(o *options) {
		if f > 0 && f <= 1 {
			o.fraction = f
		}
	}
}

// WithLogger sets the logger used to report skipped entries.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Walker enumerates a corpus rooted at a single directory.
type Walker struct {
	root string
	opts options
}

// New validates the corpus root and returns a Walker. A missing or
// unreadable root is an error; unreadable entries encountered later
// during the walk are skipped, not fatal.
func New(root string, opts ...Option) (*Walker, error) {
	o := options{fraction: 1.0, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("corpus root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus root %q is not a directory", root)
	}

	return &Walker{root: root, opts: o}, nil
}

// Root returns the corpus root directory.
func (w *Walker) Root() string {
	return w.root
}

// Files returns a restartable sequence over the selected corpus files.
// Each call re-walks the tree, so the sequence reflects the directory
// contents at iteration time, in lexicographic path order.
func (w *Walker) Files() iter.Seq[File] {
	return func(yield func(File) bool) {
		for _, f := range w.collect() {
			if !yield(f) {
				return
			}
		}
	}
}

// List materializes the selected corpus files. Convenience wrapper
// around Files for callers that need the whole set up front.
func (w *Walker) List() []File {
	return w.collect()
}

func (w *Walker) collect() []File {
	var files []File
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.opts.logger.Warn("skipping unreadable corpus entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if w.opts.extensions != nil {
			if _, ok := w.opts.extensions[ext]; !ok {
				return nil
			}
		}

		info, err := d.Info()
		if err != nil {
			w.opts.logger.Warn("skipping corpus file", "path", path, "error", err)
			return nil
		}

		files = append(files, File{Path: path, Size: info.Size(), Format: ext})
		return nil
	})
	if err != nil {
		w.opts.logger.Warn("corpus walk aborted", "root", w.root, "error", err)
	}

	// WalkDir groups entries by directory, which diverges from strict
	// lexicographic full-path order when a file and a directory share
	// a prefix ("a.txt" vs "a/b.txt"). Sort to make the order exact.
	slices.SortFunc(files, func(a, b File) int {
		return strings.Compare(a.Path, b.Path)
	})

	return subsample(files, w.opts.fraction)
}

// subsample picks ceil(f*n) evenly spaced files. The selection depends
// only on n and f, keeping fast-mode runs reproducible.
func subsample(files []File, f float64) []File {
	n := len(files)
	if f >= 1 || n == 0 {
		return files
	}

	k := int(math.Ceil(f * float64(n)))
	if k < 1 {
		k = 1
	}

	out := make([]File, 0, k)
	for i := range k {
		out = append(out, files[i*n/k])
	}
	return out
}
