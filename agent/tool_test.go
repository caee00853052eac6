package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type echoArgs struct {
	Text  string `json:"text"`
	Times int    `json:"times"`
}

func echoTool() Tool {
	return Func([]string{"text"}, func(_ context.Context, in echoArgs) (any, error) {
		if in.Times <= 0 {
			in.Times = 1
		}
		out := ""
		for i := 0; i < in.Times; i++ {
			out += in.Text
		}
		return out, nil
	})
}

func TestFuncDecodesArgs(t *testing.T) {
	out, err := echoTool().Call(context.Background(), map[string]any{"text": "ab", "times": 2})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if out != "abab" {
		t.Errorf("Call = %v, want abab", out)
	}
}

func TestFuncMissingRequired(t *testing.T) {
	_, err := echoTool().Call(context.Background(), map[string]any{"times": 2})
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("expected *ArgumentError, got %v", err)
	}
}

func TestFuncUnknownAndMistypedArgs(t *testing.T) {
	tool := echoTool()
	var argErr *ArgumentError

	_, err := tool.Call(context.Background(), map[string]any{"text": "x", "bogus": true})
	if !errors.As(err, &argErr) {
		t.Fatalf("unknown key: expected *ArgumentError, got %v", err)
	}

	_, err = tool.Call(context.Background(), map[string]any{"text": 42})
	if !errors.As(err, &argErr) {
		t.Fatalf("wrong type: expected *ArgumentError, got %v", err)
	}
}

func TestFuncPassesThroughErrors(t *testing.T) {
	boom := errors.New("boom")
	tool := Func(nil, func(_ context.Context, _ struct{}) (any, error) {
		return nil, boom
	})

	_, err := tool.Call(context.Background(), map[string]any{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the tool's own error, got %v", err)
	}
	var argErr *ArgumentError
	if errors.As(err, &argErr) {
		t.Error("runtime failure must not surface as *ArgumentError")
	}
}

type stringerVal struct{ s string }

func (v stringerVal) String() string { return v.s }

func TestDisplayText(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"plain", "plain"},
		{stringerVal{"stringy"}, "stringy"},
		{map[string]any{"k": 1}, `{"k":1}`},
		{[]any{1, "two"}, `[1,"two"]`},
		{3.5, "3.5"},
		{int64(7), "7"},
	}
	for _, tc := range cases {
		if got := DisplayText(tc.in); got != tc.want {
			t.Errorf("DisplayText(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := Func(nil, func(_ context.Context, _ struct{}) (any, error) { return "a", nil })
	b := Func(nil, func(_ context.Context, _ struct{}) (any, error) { return "b", nil })

	r.Register("zeta", a)
	r.Register("alpha", a)
	r.RegisterAll(map[string]Tool{"mid": a})

	names := r.Names()
	want := []string{"alpha", "mid", "zeta"}
	if fmt.Sprint(names) != fmt.Sprint(want) {
		t.Errorf("Names = %v, want %v (sorted)", names, want)
	}

	// Last writer wins.
	r.Register("alpha", b)
	tool, ok := r.Get("alpha")
	if !ok {
		t.Fatal("Get failed for registered tool")
	}
	out, _ := tool.Call(context.Background(), map[string]any{})
	if out != "b" {
		t.Errorf("re-registered tool returned %v, want b", out)
	}

	r.Unregister("alpha")
	if _, ok := r.Get("alpha"); ok {
		t.Error("Get succeeded after Unregister")
	}
}
