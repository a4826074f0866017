package diffparser

import (
	"testing"

	"github.com/cstobie/commit-synth/internal/pipeline"
)

func TestParseEmpty(t *testing.T) {
	files, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected 0 files, got %d", len(files))
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("not a diff at all\njust some text\n"))
	if err != ErrMalformedDiff {
		t.Fatalf("expected ErrMalformedDiff, got %v", err)
	}
}

func TestParseSingleModified(t *testing.T) {
	diff := "diff --git a/README.md b/README.md\n" +
		"index abc123..def456 100644\n" +
		"--- a/README.md\n" +
		"+++ b/README.md\n" +
		"@@ -1 +1 @@\n" +
		"-Hello\n" +
		"+Hello world\n"
	files, err := Parse([]byte(diff))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	f := files[0]
	if f.Path != "README.md" {
		t.Fatalf("expected path README.md, got %q", f.Path)
	}
	if f.Operation != pipeline.Modified {
		t.Fatalf("expected Modified, got %v", f.Operation)
	}
	if f.LinesAdded != 1 || f.LinesRemoved != 1 {
		t.Fatalf("expected +1/-1, got +%d/-%d", f.LinesAdded, f.LinesRemoved)
	}
}

func TestParseAdded(t *testing.T) {
	diff := "diff --git a/new.go b/new.go\n" +
		"new file mode 100644\n" +
		"index 0000000..abc123\n" +
		"--- /dev/null\n" +
		"+++ b/new.go\n" +
		"@@ -0,0 +1,2 @@\n" +
		"+package main\n" +
		"+func main() {}\n"
	files, err := Parse([]byte(diff))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if files[0].Operation != pipeline.Added {
		t.Fatalf("expected Added, got %v", files[0].Operation)
	}
	if files[0].LinesAdded != 2 {
		t.Fatalf("expected 2 lines added, got %d", files[0].LinesAdded)
	}
}

func TestParseDeleted(t *testing.T) {
	diff := "diff --git a/old.go b/old.go\n" +
		"deleted file mode 100644\n" +
		"index abc123..0000000\n" +
		"--- a/old.go\n" +
		"+++ /dev/null\n" +
		"@@ -1,2 +0,0 @@\n" +
		"-package main\n" +
		"-func main() {}\n"
	files, err := Parse([]byte(diff))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if files[0].Operation != pipeline.Deleted {
		t.Fatalf("expected Deleted, got %v", files[0].Operation)
	}
	if files[0].LinesRemoved != 2 {
		t.Fatalf("expected 2 lines removed, got %d", files[0].LinesRemoved)
	}
}

func TestParseRenamed(t *testing.T) {
	diff := "diff --git a/old_name.go b/new_name.go\n" +
		"similarity index 100%\n" +
		"rename from old_name.go\n" +
		"rename to new_name.go\n"
	files, err := Parse([]byte(diff))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if files[0].Operation != pipeline.Renamed {
		t.Fatalf("expected Renamed, got %v", files[0].Operation)
	}
	if files[0].Path != "new_name.go" {
		t.Fatalf("expected path new_name.go, got %q", files[0].Path)
	}
}

func TestParseBinary(t *testing.T) {
	diff := "diff --git a/logo.png b/logo.png\n" +
		"new file mode 100644\n" +
		"index 0000000..abc123\n" +
		"Binary files /dev/null and b/logo.png differ\n"
	files, err := Parse([]byte(diff))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := files[0]
	// new file mode wins priority over the binary marker per the fixed
	// detection order; binary-ness surfaces later through the analyzer's
	// empty-hunk check, not through Operation itself.
	if f.Operation != pipeline.Added {
		t.Fatalf("expected Added, got %v", f.Operation)
	}
	if f.HunkText != "" {
		t.Fatalf("expected empty hunk text for binary file, got %q", f.HunkText)
	}
}

func TestParseBinaryModified(t *testing.T) {
	diff := "diff --git a/logo.png b/logo.png\n" +
		"index abc123..def456 100644\n" +
		"Binary files a/logo.png and b/logo.png differ\n"
	files, err := Parse([]byte(diff))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if files[0].Operation != pipeline.Binary {
		t.Fatalf("expected Binary, got %v", files[0].Operation)
	}
}

func TestParseMultipleFiles(t *testing.T) {
	diff := "diff --git a/a.go b/a.go\n" +
		"@@ -1 +1 @@\n" +
		"-x\n" +
		"+y\n" +
		"diff --git a/b.go b/b.go\n" +
		"new file mode 100644\n" +
		"@@ -0,0 +1 @@\n" +
		"+z\n"
	files, err := Parse([]byte(diff))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Path != "a.go" || files[1].Path != "b.go" {
		t.Fatalf("unexpected paths: %q %q", files[0].Path, files[1].Path)
	}
}

func TestParseRoundTripLineCounts(t *testing.T) {
	diff := "diff --git a/f.go b/f.go\n" +
		"@@ -1,3 +1,4 @@\n" +
		" unchanged\n" +
		"-removed one\n" +
		"-removed two\n" +
		"+added one\n" +
		"+added two\n" +
		"+added three\n"
	files, err := Parse([]byte(diff))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if files[0].LinesAdded != 3 || files[0].LinesRemoved != 2 {
		t.Fatalf("expected +3/-2, got +%d/-%d", files[0].LinesAdded, files[0].LinesRemoved)
	}
}

func TestParseInvalidUTF8Replaced(t *testing.T) {
	diff := []byte("diff --git a/f.go b/f.go\n@@ -1 +1 @@\n-a\n+b\xff\xfec\n")
	files, err := Parse(diff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
}
