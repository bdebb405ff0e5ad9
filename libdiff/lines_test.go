package libdiff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     []Edit
	}{
		{name: "equal", from: "a\nb\n", to: "a\nb\n"},
		{
			name: "replace line",
			from: "int x=1;\nint y;\n",
			to:   "int x = 1;\nint y;\n",
			want: []Edit{{Start: 0, End: 1, Old: "int x=1;\n", New: "int x = 1;\n"}},
		},
		{
			name: "final newline",
			from: "int x;",
			to:   "int x;\n",
			want: []Edit{{Start: 0, End: 1, Old: "int x;", New: "int x;\n"}},
		},
		{
			name: "insert",
			from: "a\nc\n",
			to:   "a\nb\nc\n",
			want: []Edit{{Start: 1, End: 1, New: "b\n"}},
		},
		{
			name: "delete",
			from: "a\nb\n\n\nc\n",
			to:   "a\nb\nc\n",
			want: []Edit{{Start: 2, End: 4, Old: "\n\n"}},
		},
		{
			name: "empty from",
			from: "",
			to:   "x\n",
			want: []Edit{{Start: 0, End: 0, New: "x\n"}},
		},
		{
			name: "empty to",
			from: "x\ny\n",
			to:   "",
			want: []Edit{{Start: 0, End: 2, Old: "x\ny\n"}},
		},
		{
			name: "crlf",
			from: "a\r\nb\n",
			to:   "a\r\nb\r\n",
			want: []Edit{{Start: 1, End: 2, Old: "b\n", New: "b\r\n"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines(tt.from, tt.to)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("edits (-want +got):\n%s", diff)
			}
			res, err := Apply(tt.from, got)
			if err != nil {
				t.Fatal(err)
			}
			if res != tt.to {
				t.Errorf("Apply got %q want %q", res, tt.to)
			}
			back, err := Apply(tt.to, Reverse(got))
			if err != nil {
				t.Fatal(err)
			}
			if back != tt.from {
				t.Errorf("Reverse got %q want %q", back, tt.from)
			}
		})
	}
}

func TestLinesLarge(t *testing.T) {
	var from, to strings.Builder
	for i := range 2000 {
		fmt.Fprintf(&from, "int v%d=%d;\n", i, i)
		if i%7 == 0 {
			fmt.Fprintf(&to, "int v%d = %d;\n", i, i)
		} else {
			fmt.Fprintf(&to, "int v%d=%d;\n", i, i)
		}
	}
	edits := Lines(from.String(), to.String())
	if len(edits) != 286 {
		t.Errorf("got %d edits", len(edits))
	}
	res, err := Apply(from.String(), edits)
	if err != nil {
		t.Fatal(err)
	}
	if res != to.String() {
		t.Errorf("round trip mismatch")
	}
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name  string
		edits []Edit
	}{
		{"out of range", []Edit{{Start: 0, End: 5}}},
		{"out of order", []Edit{{Start: 1, End: 1, New: "x\n"}, {Start: 0, End: 1, Old: "a\n"}}},
		{"unexpected text", []Edit{{Start: 0, End: 1, Old: "z\n", New: "y\n"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Apply("a\nb\n", tt.edits); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	if diff := cmp.Diff([]string{"a\n", "b"}, SplitLines("a\nb")); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := SplitLines(""); got != nil {
		t.Errorf("got %q", got)
	}
}
