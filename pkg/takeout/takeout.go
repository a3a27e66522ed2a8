// Package takeout unpacks a Google Takeout archive into a temporary
// workspace and lists the location-history JSON files it contains.
package takeout

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zip"

	"github.com/sw33tLie/carbontimeline/internal/utils"
)

const tempDirPrefix = "carbontimeline-"

// ArchiveError is returned when the archive is missing, unreadable or corrupt.
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive %s: %v", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

// Workspace is a temporary directory holding the extracted archive.
// It must be closed to remove the directory.
type Workspace struct {
	Dir string
}

// Open extracts the zip archive at path into a fresh temporary directory.
// The directory is already removed when an error is returned.
func Open(path string) (*Workspace, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ArchiveError{Path: path, Err: err}
	}
	defer r.Close()

	dir, err := os.MkdirTemp("", tempDirPrefix)
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	ws := &Workspace{Dir: dir}

	var total uint64
	for _, f := range r.File {
		n, err := ws.extract(f)
		if err != nil {
			ws.Close()
			return nil, &ArchiveError{Path: path, Err: err}
		}
		total += n
	}

	utils.Log.Debugf("Extracted %d entries (%s) from %s into %s", len(r.File), humanize.Bytes(total), path, dir)
	return ws, nil
}

func (w *Workspace) extract(f *zip.File) (uint64, error) {
	target := filepath.Join(w.Dir, filepath.FromSlash(f.Name))
	if target != w.Dir && !strings.HasPrefix(target, w.Dir+string(os.PathSeparator)) {
		return 0, fmt.Errorf("entry %q escapes extraction directory", f.Name)
	}

	if f.FileInfo().IsDir() {
		return 0, os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return 0, err
	}

	rc, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, rc)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return uint64(n), nil
}

// JSONFiles returns every *.json file below the workspace, sorted by path.
func (w *Workspace) JSONFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(w.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".json") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list json files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// Close removes the workspace. It is safe to call more than once.
func (w *Workspace) Close() error {
	if w == nil || w.Dir == "" {
		return nil
	}
	err := os.RemoveAll(w.Dir)
	w.Dir = ""
	return err
}
