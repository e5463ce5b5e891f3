package doublons

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

type fixture struct {
	name    string
	content string
	perm    os.FileMode
}

func runOn(t *testing.T, files []fixture) (string, *Report) {
	t.Helper()

	root := t.TempDir()
	for _, f := range files {
		writeFile(t, filepath.Join(root, f.name), f.content, f.perm)
	}

	report, err := Run(context.Background(), Options{Path: root}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	return root, report
}

func TestRun_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		files []fixture
		want  [][]string
		terms []string
	}{
		{
			name:  "same content same permissions",
			files: []fixture{{"a", "hello", 0o644}, {"b", "hello", 0o644}},
			want:  [][]string{{"a", "b"}},
			terms: []string{"="},
		},
		{
			name:  "same content different permissions",
			files: []fixture{{"a", "hello", 0o644}, {"b", "hello", 0o600}},
			want:  [][]string{{"a", "b"}},
			terms: []string{"*"},
		},
		{
			name:  "same size different bytes",
			files: []fixture{{"a", "hello", 0o644}, {"b", "world", 0o644}},
		},
		{
			name:  "different sizes",
			files: []fixture{{"a", "hello", 0o644}, {"b", "hello!", 0o644}},
		},
		{
			name: "empty directory",
		},
		{
			name:  "unique files only",
			files: []fixture{{"a", "1", 0o644}, {"b", "22", 0o644}, {"c", "333", 0o644}},
		},
		{
			name:  "duplicate across subdirectory",
			files: []fixture{{"a", "hello", 0o644}, {filepath.Join("sub", "a"), "hello", 0o644}},
			want:  [][]string{{"a", filepath.Join("sub", "a")}},
			terms: []string{"="},
		},
		{
			name: "several classes",
			files: []fixture{
				{"x1", "", 0o644}, {"x2", "", 0o644},
				{"a", "hello", 0o644}, {filepath.Join("d", "b"), "hello", 0o755}, {"c", "hello", 0o644},
				{"w", "world", 0o644},
			},
			want:  [][]string{{"x1", "x2"}, {"a", "c", filepath.Join("d", "b")}},
			terms: []string{"=", "*"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, report := runOn(t, tt.files)

			if len(report.Classes) != len(tt.want) {
				t.Fatalf("got %d classes %v, want %d", len(report.Classes), report.Classes, len(tt.want))
			}

			for i, class := range report.Classes {
				want := make([]string, len(tt.want[i]))
				for j, p := range tt.want[i] {
					want[j] = filepath.Join(root, p)
				}

				got := slices.Clone(class.Paths)
				slices.Sort(got)
				slices.Sort(want)

				if !slices.Equal(got, want) {
					t.Errorf("class %d: got %v, want %v", i, got, want)
				}

				if class.Terminator() != tt.terms[i] {
					t.Errorf("class %d: got terminator %q, want %q", i, class.Terminator(), tt.terms[i])
				}
			}

			if report.FileCount != int64(len(tt.files)) {
				t.Errorf("got file count %d, want %d", report.FileCount, len(tt.files))
			}
		})
	}
}

func TestRun_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a"), "hello", 0o644)
	writeFile(t, filepath.Join(root, "b", "c"), "hello", 0o600)
	writeFile(t, filepath.Join(root, "b", "d"), "world", 0o644)
	writeFile(t, filepath.Join(root, "e"), "world", 0o644)

	first, err := Run(context.Background(), Options{Path: root}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	second, err := Run(context.Background(), Options{Path: root}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(first.Classes) != 2 || len(first.Classes) != len(second.Classes) {
		t.Fatalf("got %v and %v", first.Classes, second.Classes)
	}

	for i := range first.Classes {
		if !slices.Equal(first.Classes[i].Paths, second.Classes[i].Paths) ||
			first.Classes[i].Terminator() != second.Classes[i].Terminator() {
			t.Errorf("class %d differs: %v vs %v", i, first.Classes[i], second.Classes[i])
		}
	}
}

func TestRun_ClassMembersAreDuplicates(t *testing.T) {
	root := t.TempDir()
	contents := []string{"a", "b", "a", "ab", "ba", "ab", "a", ""}

	for i, c := range contents {
		writeFile(t, filepath.Join(root, string(rune('p'+i))), c, 0o644)
	}

	report, err := Run(context.Background(), Options{Path: root}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	seen := map[string]bool{}

	for _, class := range report.Classes {
		for _, p := range class.Paths {
			if seen[p] {
				t.Fatalf("%s appears in more than one class", p)
			}

			seen[p] = true

			info, err := os.Stat(p)
			if err != nil {
				t.Fatalf("stat: %v", err)
			}

			if info.Size() != class.Size {
				t.Errorf("%s: size %d, class size %d", p, info.Size(), class.Size)
			}

			equal, err := FileComparator{}.BytesEqual(class.Paths[0], p)
			if err != nil || !equal {
				t.Errorf("%s not byte-equal to anchor %s: %v", p, class.Paths[0], err)
			}
		}
	}

	// "a" x3 and "ab" x2.
	if len(report.Classes) != 2 || report.DuplicateFiles() != 3 || report.Reclaimable() != 4 {
		t.Fatalf("got %d classes, %d duplicates, %d reclaimable",
			len(report.Classes), report.DuplicateFiles(), report.Reclaimable())
	}
}

func TestRun_RootErrors(t *testing.T) {
	_, err := Run(context.Background(), Options{Path: filepath.Join(t.TempDir(), "missing")}, nil)
	if KindOf(err) != KindTraversal {
		t.Fatalf("got %v, want traversal error", err)
	}
}
