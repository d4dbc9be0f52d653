package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CompressedSuffix marks files written by a previous run. Such files are
// never picked up as sources.
const CompressedSuffix = "_compressed"

// Supported video extensions (lowercase, with leading dot).
var videoExtensions = map[string]bool{
	".mp4": true,
	".avi": true,
	".mov": true,
	".mkv": true,
}

// ErrInvalidDirectory is returned when the source path does not exist or is
// not a directory. No job is attempted in that case.
var ErrInvalidDirectory = errors.New("invalid source directory")

// IsSupported reports whether name has a recognized video extension
// (case-insensitive).
func IsSupported(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsCompressedName reports whether the base name (extension stripped)
// already ends with CompressedSuffix. The comparison is case-insensitive so
// "clip_COMPRESSED.mp4" is also treated as an output.
func IsCompressedName(name string) bool {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.HasSuffix(strings.ToLower(stem), CompressedSuffix)
}

// ValidateDir checks that dir exists and is a directory. Failures wrap
// ErrInvalidDirectory.
func ValidateDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrInvalidDirectory, dir)
		}
		return fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidDirectory, dir)
	}
	return nil
}

// Discover lists dir (non-recursively), keeps regular files with a video
// extension that do not carry the _compressed marker, and returns their
// paths sorted by name for deterministic processing order. Symlinks are
// followed; entries that cannot be resolved are ignored.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if !IsSupported(name) || IsCompressedName(name) {
			continue
		}
		path := filepath.Join(dir, name)
		if !isRegularFile(path, e) {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

func isRegularFile(path string, e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.Type().IsRegular()
	}
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
