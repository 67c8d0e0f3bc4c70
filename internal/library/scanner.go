package library

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"squeeze/internal/config"
)

// Title is one top-level library folder.
type Title struct {
	Name         string
	Path         string
	VersionsPath string
}

// Candidate is a source file eligible for conversion, paired with the
// output path its converted variant would occupy.
type Candidate struct {
	Title        string
	DisplayTitle string
	Stem         string
	SourcePath   string
	OutputPath   string
	SizeBytes    int64
}

// Scanner discovers titles and candidates under a library root.
type Scanner struct {
	root         string
	versionsDir  string
	profileLabel string
	extensions   map[string]struct{}
}

// NewScanner constructs a scanner for the given root using the library
// layout configuration.
func NewScanner(root string, lib config.Library) *Scanner {
	extensions := make(map[string]struct{}, len(lib.Extensions))
	for _, ext := range lib.Extensions {
		extensions[strings.ToLower(ext)] = struct{}{}
	}
	return &Scanner{
		root:         root,
		versionsDir:  lib.VersionsDir,
		profileLabel: lib.ProfileLabel,
		extensions:   extensions,
	}
}

// Root returns the library root the scanner operates on.
func (s *Scanner) Root() string {
	return s.root
}

// Titles enumerates the immediate subdirectories of the library root.
// Non-directory entries at the root are ignored.
func (s *Scanner) Titles() ([]Title, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read library root: %w", err)
	}

	titles := make([]Title, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(s.root, entry.Name())
		titles = append(titles, Title{
			Name:         entry.Name(),
			Path:         path,
			VersionsPath: filepath.Join(path, s.versionsDir, s.profileLabel),
		})
	}
	return titles, nil
}

// EnsureVersionsDir creates the title's versions folder hierarchy if absent.
func (s *Scanner) EnsureVersionsDir(title Title) error {
	if err := os.MkdirAll(title.VersionsPath, 0o755); err != nil {
		return fmt.Errorf("create versions directory %q: %w", title.VersionsPath, err)
	}
	return nil
}

// Candidates walks a title folder recursively and returns its candidate
// files in lexical walk order. Anything under the versions folder is
// excluded, as are files whose extension is not registered. Outputs are
// flattened into the versions folder by base name.
func (s *Scanner) Candidates(title Title) ([]Candidate, error) {
	var candidates []Candidate
	err := filepath.WalkDir(title.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == s.versionsDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.IsVideoFile(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		base := d.Name()
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		candidates = append(candidates, Candidate{
			Title:        title.Name,
			DisplayTitle: DisplayTitle(stem),
			Stem:         stem,
			SourcePath:   path,
			OutputPath:   filepath.Join(title.VersionsPath, base),
			SizeBytes:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk title %q: %w", title.Name, err)
	}
	return candidates, nil
}

// IsVideoFile reports whether the file name carries a registered extension.
func (s *Scanner) IsVideoFile(name string) bool {
	_, ok := s.extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}
