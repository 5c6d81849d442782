package tools

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/geolas/pointclassify/internal/config"
)

// FileFinder discovers point-cloud input files for a run, generalized from
// a LAS-only file walker to the set of point formats a PointSetLoader
// collaborator accepts.
type FileFinder interface {
	GetInputFiles(opts *config.ClassifyOptions) ([]string, error)
}

// StandardFileFinder walks a single file or a folder tree, matching
// recognized point-cloud extensions.
type StandardFileFinder struct {
	Extensions []string // e.g. []string{".las", ".laz", ".ply"}
	Recursive  bool
}

func NewStandardFileFinder(extensions []string, recursive bool) *StandardFileFinder {
	return &StandardFileFinder{Extensions: extensions, Recursive: recursive}
}

func (f *StandardFileFinder) GetInputFiles(opts *config.ClassifyOptions) ([]string, error) {
	info, err := os.Stat(opts.Input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{opts.Input}, nil
	}

	var files []string
	baseInfo := info
	err = filepath.Walk(opts.Input, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if !f.Recursive && !os.SameFile(info, baseInfo) {
				return filepath.SkipDir
			}
			return nil
		}
		if f.hasRecognizedExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (f *StandardFileFinder) hasRecognizedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range f.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}
