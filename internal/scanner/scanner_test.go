package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/panbanda/ctree/pkg/config"
)

const stub = "int sub_401000(void)\n{\n  return 0;\n}\n"

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", name, err)
		}
	}
}

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		if err != nil {
			t.Fatalf("Rel(%s): %v", f, err)
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	sort.Strings(rel)
	return rel
}

func equalPaths(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewScanner(t *testing.T) {
	s := NewScanner(nil)
	if s == nil {
		t.Fatal("NewScanner(nil) returned nil")
	}
	if s.config == nil {
		t.Error("scanner.config should not be nil when passing nil")
	}

	cfg := config.DefaultConfig()
	s = NewScanner(cfg)
	if s.config != cfg {
		t.Error("scanner.config should be the provided config")
	}
}

func TestScanDir(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"main.c":            stub,
		"dumps/sub.pseudo":  stub,
		"dumps/class.cpp":   stub,
		"include/types.h":   "typedef int _DWORD;\n",
		"notes.txt":         "not pseudocode\n",
		"dumps/listing.asm": "mov eax, 1\n",
	})

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	want := []string{"dumps/class.cpp", "dumps/sub.pseudo", "include/types.h", "main.c"}
	if got := relPaths(t, tmpDir, result); !equalPaths(got, want) {
		t.Errorf("ScanDir() = %v, want %v", got, want)
	}
}

func TestScanDirLanguageFilter(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"a.c":   stub,
		"b.cpp": stub,
		"c.cc":  stub,
	})

	cfg := config.DefaultConfig()
	cfg.Lift.Language = "cpp"

	result, err := NewScanner(cfg).ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	want := []string{"b.cpp", "c.cc"}
	if got := relPaths(t, tmpDir, result); !equalPaths(got, want) {
		t.Errorf("ScanDir() = %v, want %v", got, want)
	}
}

func TestScanDirExcludesDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"main.c":          stub,
		".git/hooks/x.c":  stub,
		".ctree/cache.c":  stub,
		"vendor/libc/x.c": stub,
	})

	cfg := config.DefaultConfig()
	cfg.Scan.Exclude = append(cfg.Scan.Exclude, "vendor/")

	result, err := NewScanner(cfg).ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	want := []string{"main.c"}
	if got := relPaths(t, tmpDir, result); !equalPaths(got, want) {
		t.Errorf("ScanDir() = %v, want %v", got, want)
	}
}

func TestScanDirExcludesPatterns(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"main.c":          stub,
		"main.bak.c":      stub,
		"old/sub.bak.c":   stub,
		"old/keep.c":      stub,
		"generated/gen.h": stub,
	})

	cfg := config.DefaultConfig()
	cfg.Scan.Exclude = []string{"*.bak.c", "generated"}

	result, err := NewScanner(cfg).ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	want := []string{"main.c", "old/keep.c"}
	if got := relPaths(t, tmpDir, result); !equalPaths(got, want) {
		t.Errorf("ScanDir() = %v, want %v", got, want)
	}
}

func TestScanDirWithGitignore(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create .git dir: %v", err)
	}
	writeFiles(t, tmpDir, map[string]string{
		".gitignore":    "skipme/\n*.tmp.c\n",
		"main.c":        stub,
		"skipme/skip.c": stub,
		"src/app.c":     stub,
		"src/app.tmp.c": stub,
	})

	result, err := NewScanner(nil).ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	want := []string{"main.c", "src/app.c"}
	if got := relPaths(t, tmpDir, result); !equalPaths(got, want) {
		t.Errorf("ScanDir() = %v, want %v", got, want)
	}
}

func TestScanDirDisabledGitignore(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create .git dir: %v", err)
	}
	writeFiles(t, tmpDir, map[string]string{
		".gitignore":    "skipme/\n",
		"main.c":        stub,
		"skipme/skip.c": stub,
	})

	cfg := config.DefaultConfig()
	cfg.Scan.Gitignore = false

	result, err := NewScanner(cfg).ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	want := []string{"main.c", "skipme/skip.c"}
	if got := relPaths(t, tmpDir, result); !equalPaths(got, want) {
		t.Errorf("ScanDir() = %v, want %v", got, want)
	}
}

func TestScanDirMaxFileSize(t *testing.T) {
	tmpDir := t.TempDir()
	big := make([]byte, 2048)
	for i := range big {
		big[i] = ' '
	}
	writeFiles(t, tmpDir, map[string]string{
		"small.c": stub,
		"big.c":   string(big),
	})

	cfg := config.DefaultConfig()
	cfg.Scan.MaxFileSize = 1024

	result, err := NewScanner(cfg).ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	want := []string{"small.c"}
	if got := relPaths(t, tmpDir, result); !equalPaths(got, want) {
		t.Errorf("ScanDir() = %v, want %v", got, want)
	}
}

func TestScanDirEmptyDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	result, err := NewScanner(nil).ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("ScanDir() on empty dir found %d files, want 0", len(result))
	}
}

func TestScanDirNonExistent(t *testing.T) {
	if _, err := NewScanner(nil).ScanDir("/nonexistent/dumps"); err == nil {
		t.Error("ScanDir() should fail for a missing root")
	}
}

func TestExpand(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"dumps/a.c":   stub,
		"dumps/b.cpp": stub,
		"single.txt":  stub,
	})

	single := filepath.Join(tmpDir, "single.txt")
	missing := filepath.Join(tmpDir, "missing.c")
	dir := filepath.Join(tmpDir, "dumps")

	result, err := NewScanner(nil).Expand([]string{single, dir, missing})
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}

	want := []string{
		single,
		filepath.Join(dir, "a.c"),
		filepath.Join(dir, "b.cpp"),
		missing,
	}
	if !equalPaths(result, want) {
		t.Errorf("Expand() = %v, want %v", result, want)
	}
}

func TestFilterBySize(t *testing.T) {
	tmpDir := t.TempDir()

	largeContent := make([]byte, 1024)
	for i := range largeContent {
		largeContent[i] = 'x'
	}

	smallFile := filepath.Join(tmpDir, "small.c")
	largeFile := filepath.Join(tmpDir, "large.c")

	if err := os.WriteFile(smallFile, []byte("small"), 0644); err != nil {
		t.Fatalf("Failed to create small file: %v", err)
	}
	if err := os.WriteFile(largeFile, largeContent, 0644); err != nil {
		t.Fatalf("Failed to create large file: %v", err)
	}

	t.Run("no limit", func(t *testing.T) {
		filtered, skipped := FilterBySize([]string{smallFile, largeFile}, 0)
		if len(filtered) != 2 || skipped != 0 {
			t.Errorf("FilterBySize(0) = %d kept, %d skipped, want 2, 0", len(filtered), skipped)
		}
	})

	t.Run("with limit", func(t *testing.T) {
		filtered, skipped := FilterBySize([]string{smallFile, largeFile}, 100)
		if len(filtered) != 1 || skipped != 1 {
			t.Fatalf("FilterBySize(100) = %d kept, %d skipped, want 1, 1", len(filtered), skipped)
		}
		if filtered[0] != smallFile {
			t.Errorf("FilterBySize should keep small file, got %s", filtered[0])
		}
	})

	t.Run("with stat error", func(t *testing.T) {
		nonExistent := filepath.Join(tmpDir, "nonexistent.c")
		filtered, skipped := FilterBySize([]string{smallFile, nonExistent}, 100)
		if len(filtered) != 1 || skipped != 1 {
			t.Errorf("FilterBySize = %d kept, %d skipped, want 1, 1", len(filtered), skipped)
		}
	})
}

func TestIsWithinRoot(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"same path", tmpDir, true},
		{"child path", filepath.Join(tmpDir, "dumps", "a.c"), true},
		{"path outside root", "/some/other/path", false},
		{"parent path", filepath.Dir(tmpDir), false},
		{"similar prefix but different dir", tmpDir + "2/a.c", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isWithinRoot(tt.path, tmpDir); got != tt.want {
				t.Errorf("isWithinRoot(%q, %q) = %v, want %v", tt.path, tmpDir, got, tt.want)
			}
		})
	}
}

func TestFindGitRoot(t *testing.T) {
	tmpDir := t.TempDir()
	if got := findGitRoot(tmpDir); got != "" {
		t.Errorf("findGitRoot() on non-git dir should return empty string, got %q", got)
	}

	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create .git dir: %v", err)
	}
	if got := findGitRoot(tmpDir); got != tmpDir {
		t.Errorf("findGitRoot() = %q, want %q", got, tmpDir)
	}

	subDir := filepath.Join(tmpDir, "dumps", "x86")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}
	if got := findGitRoot(subDir); got != tmpDir {
		t.Errorf("findGitRoot() from subdir = %q, want %q", got, tmpDir)
	}
}

func TestScanDirWithSymlinks(t *testing.T) {
	tmpDir := t.TempDir()

	realFile := filepath.Join(tmpDir, "real.c")
	if err := os.WriteFile(realFile, []byte(stub), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := os.Symlink(realFile, filepath.Join(tmpDir, "link.c")); err != nil {
		t.Skip("Symlinks not supported on this system")
	}
	if err := os.Symlink("/nonexistent/path/file.c", filepath.Join(tmpDir, "dangling.c")); err != nil {
		t.Skip("Symlinks not supported on this system")
	}

	result, err := NewScanner(nil).ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	want := []string{"link.c", "real.c"}
	if got := relPaths(t, tmpDir, result); !equalPaths(got, want) {
		t.Errorf("ScanDir() = %v, want %v", got, want)
	}
}

func TestScanDirWithSymlinkOutsideRoot(t *testing.T) {
	tmpDir := t.TempDir()
	outsideDir := t.TempDir()

	outside := filepath.Join(outsideDir, "outside.c")
	if err := os.WriteFile(outside, []byte(stub), 0644); err != nil {
		t.Fatalf("Failed to create outside file: %v", err)
	}
	if err := os.Symlink(outside, filepath.Join(tmpDir, "escape.c")); err != nil {
		t.Skip("Symlinks not supported on this system")
	}
	if err := os.Symlink(outsideDir, filepath.Join(tmpDir, "linked")); err != nil {
		t.Skip("Symlinks not supported on this system")
	}

	result, err := NewScanner(nil).ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("ScanDir() should not follow symlinks outside the root, got %v", result)
	}
}
