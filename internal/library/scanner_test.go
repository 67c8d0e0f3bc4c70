package library

import (
	"os"
	"path/filepath"
	"testing"

	"squeeze/internal/config"
)

func testLayout() config.Library {
	return config.Library{
		VersionsDir:  "Custom Versions",
		ProfileLabel: "1Mbps",
		Extensions:   []string{".mp4", ".mkv", ".webm", ".avi"},
	}
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestTitlesSkipsLooseFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "Movie A (2019)"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "Movie B (2021)"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "stray.mkv"))

	scanner := NewScanner(root, testLayout())
	titles, err := scanner.Titles()
	if err != nil {
		t.Fatalf("Titles returned error: %v", err)
	}
	if len(titles) != 2 {
		t.Fatalf("expected 2 titles, got %d", len(titles))
	}
	want := filepath.Join(root, "Movie A (2019)", "Custom Versions", "1Mbps")
	if titles[0].VersionsPath != want {
		t.Fatalf("unexpected versions path: got %q want %q", titles[0].VersionsPath, want)
	}
}

func TestEnsureVersionsDir(t *testing.T) {
	root := t.TempDir()
	titleDir := filepath.Join(root, "Movie (2019)")
	if err := os.MkdirAll(titleDir, 0o755); err != nil {
		t.Fatal(err)
	}

	scanner := NewScanner(root, testLayout())
	titles, err := scanner.Titles()
	if err != nil {
		t.Fatal(err)
	}
	if err := scanner.EnsureVersionsDir(titles[0]); err != nil {
		t.Fatalf("EnsureVersionsDir returned error: %v", err)
	}
	info, err := os.Stat(titles[0].VersionsPath)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected versions dir to exist, err=%v", err)
	}
	// Idempotent.
	if err := scanner.EnsureVersionsDir(titles[0]); err != nil {
		t.Fatalf("second EnsureVersionsDir returned error: %v", err)
	}
}

func TestCandidatesFiltersAndSkipsVersionsDir(t *testing.T) {
	root := t.TempDir()
	titleDir := filepath.Join(root, "Movie (2019)")
	writeFile(t, filepath.Join(titleDir, "movie.mkv"))
	writeFile(t, filepath.Join(titleDir, "movie.srt"))
	writeFile(t, filepath.Join(titleDir, "Extras", "interview.mp4"))
	// Already-converted output must never be revisited.
	writeFile(t, filepath.Join(titleDir, "Custom Versions", "1Mbps", "movie.mkv"))

	scanner := NewScanner(root, testLayout())
	titles, err := scanner.Titles()
	if err != nil {
		t.Fatal(err)
	}
	candidates, err := scanner.Candidates(titles[0])
	if err != nil {
		t.Fatalf("Candidates returned error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(candidates), candidates)
	}
	for _, c := range candidates {
		if c.Title != "Movie (2019)" {
			t.Fatalf("unexpected candidate title: %q", c.Title)
		}
		if filepath.Dir(c.OutputPath) != titles[0].VersionsPath {
			t.Fatalf("expected output under versions path, got %q", c.OutputPath)
		}
	}
	// Nested candidate outputs flatten by base name.
	nested := candidates[1]
	if filepath.Base(nested.SourcePath) != "interview.mp4" && filepath.Base(candidates[0].SourcePath) != "interview.mp4" {
		t.Fatalf("expected nested candidate to be discovered, got %+v", candidates)
	}
}

func TestIsVideoFileCaseInsensitive(t *testing.T) {
	scanner := NewScanner(t.TempDir(), testLayout())
	if !scanner.IsVideoFile("MOVIE.MKV") {
		t.Fatal("expected uppercase extension to match")
	}
	if scanner.IsVideoFile("notes.txt") {
		t.Fatal("expected non-video extension to be rejected")
	}
}

func TestDisplayTitle(t *testing.T) {
	cases := map[string]string{
		"the.big.movie.2019": "The Big Movie 2019",
		"Some_Show-s01e02":   "Some Show S01e02",
		"already clean":      "Already Clean",
		"___":                "___",
	}
	for input, want := range cases {
		if got := DisplayTitle(input); got != want {
			t.Fatalf("DisplayTitle(%q) = %q, want %q", input, got, want)
		}
	}
}
