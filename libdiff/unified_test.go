package libdiff

import (
	"strings"
	"testing"
)

func TestUnified(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     string
	}{
		{name: "equal", from: "a\n", to: "a\n", want: ""},
		{
			name: "one line",
			from: "int x=1;\nint y;\n",
			to:   "int x = 1;\nint y;\n",
			want: `--- a.cc
+++ a.cc (formatted)
@@ -1,2 +1,2 @@
-int x=1;
+int x = 1;
 int y;
`,
		},
		{
			name: "no newline",
			from: "a",
			to:   "a\n",
			want: `--- a.cc
+++ a.cc (formatted)
@@ -1 +1 @@
-a
\ No newline at end of file
+a
`,
		},
		{
			name: "insert into empty",
			from: "",
			to:   "x\n",
			want: `--- a.cc
+++ a.cc (formatted)
@@ -0,0 +1 @@
+x
`,
		},
		{
			name: "two hunks",
			from: "a\nb\nc\nd\ne\nf\ng\nh\n",
			to:   "A\nb\nc\nd\ne\nf\ng\nh\ni\n",
			want: `--- a.cc
+++ a.cc (formatted)
@@ -1,2 +1,2 @@
-a
+A
 b
@@ -8 +8,2 @@
 h
+i
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Unified("a.cc", "a.cc (formatted)", tt.from, tt.to, 1)
			if got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestUnifiedMergesCloseHunks(t *testing.T) {
	got := Unified("x", "y", "a\nb\nc\n", "A\nb\nC\n", 1)
	if n := strings.Count(got, HunkPrefix+" "); n != 1 {
		t.Errorf("expected one hunk, got %d:\n%s", n, got)
	}
}
