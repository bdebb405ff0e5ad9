package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromJSONKeepsOrder(t *testing.T) {
	n, err := FromJSON([]byte(`{"z": 1, "a": {"y": true, "b": null}, "m": [1.5, "s"]}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, n.Keys()); diff != "" {
		t.Errorf("top keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"y", "b"}, Get(n, "a").Keys()); diff != "" {
		t.Errorf("nested keys (-want +got):\n%s", diff)
	}
	d, err := n.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"z":1,"a":{"y":true,"b":null},"m":[1.5,"s"]}`
	if string(d) != want {
		t.Errorf("got %s want %s", d, want)
	}
}

func TestMarshalJSONNoHTMLEscape(t *testing.T) {
	n := FromKeyVals([]KeyVal{
		{Key: FromString("Regex"), Val: FromString(`^<(gtest|gmock)/.*\.h>$`)},
		{Key: FromString("a&b"), Val: FromSlice([]*Node{FromString("x\ny\"z")})},
	})
	d, err := n.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"Regex":"^<(gtest|gmock)/.*\\.h>$","a&b":["x\ny\"z"]}`
	if string(d) != want {
		t.Errorf("got %s want %s", d, want)
	}
}

func TestFromJSONNumbers(t *testing.T) {
	tests := []struct {
		in   string
		typ  string
		text string
	}{
		{in: `80`, typ: "int", text: "80"},
		{in: `-3`, typ: "int", text: "-3"},
		{in: `0.25`, typ: "float", text: "0.25"},
		{in: `1e2`, typ: "float", text: "100"},
		{in: `123456789012345678901234567890`, typ: "text", text: "123456789012345678901234567890"},
		{in: `1.5e400`, typ: "text", text: "1.5e400"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := FromJSON([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if n.Type != NumberType {
				t.Fatalf("got type %s", n.Type)
			}
			switch tt.typ {
			case "int":
				if n.Int64 == nil {
					t.Fatalf("expected int64")
				}
			case "float":
				if n.Float64 == nil {
					t.Fatalf("expected float64")
				}
			case "text":
				if n.Int64 != nil || n.Float64 != nil {
					t.Fatalf("expected text fallback")
				}
			}
			if got := n.NumberText(); got != tt.text {
				t.Errorf("got %q want %q", got, tt.text)
			}
		})
	}
}

func TestFromJSONErrors(t *testing.T) {
	for _, in := range []string{``, `{`, `[1,]`, `1 2`, `{"a" 1}`} {
		if _, err := FromJSON([]byte(in)); !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected ErrParse, got %v", in, err)
		}
	}
}

func TestFromJSONDuplicateKey(t *testing.T) {
	n, err := FromJSON([]byte(`{"a": 1, "b": 2, "a": 3}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, n.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if got := *Get(n, "a").Int64; got != 3 {
		t.Errorf("got %d want 3", got)
	}
}

func TestFromAny(t *testing.T) {
	n, err := FromAny(map[string]any{
		"b":    float64(100),
		"a":    []any{"x", true, nil},
		"frac": 0.5,
		"u":    uint64(7),
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b", "frac", "u"}, n.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if b := Get(n, "b"); b.Int64 == nil || *b.Int64 != 100 {
		t.Errorf("integral float should become int, got %+v", b)
	}
	if f := Get(n, "frac"); f.Float64 == nil || *f.Float64 != 0.5 {
		t.Errorf("expected float 0.5, got %+v", f)
	}
	if _, err := FromAny(struct{}{}); !errors.Is(err, ErrType) {
		t.Errorf("expected ErrType, got %v", err)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var n Node
	if err := n.UnmarshalJSON([]byte(`{"k": ["v"]}`)); err != nil {
		t.Fatal(err)
	}
	v := Get(&n, "k")
	if v == nil || v.Type != ArrayType || v.Parent != &n {
		t.Fatalf("unexpected %+v", v)
	}
}
