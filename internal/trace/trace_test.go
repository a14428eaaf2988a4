package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		err  bool
	}{
		{"", LevelOff, false},
		{"off", LevelOff, false},
		{"ERROR", LevelError, false},
		{" phase ", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.err {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.err)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	if !LevelError.ShouldEmit(ScopeStage) || LevelError.ShouldEmit(ScopeItem) {
		t.Fatalf("error level should record up to stages")
	}
	if LevelOff.ShouldEmit(ScopeCommand) {
		t.Fatalf("off level should record nothing")
	}
	if !LevelPhase.ShouldEmit(ScopeStage) || LevelPhase.ShouldEmit(ScopeItem) {
		t.Fatalf("phase level should stop at stages")
	}
	if !LevelDetail.ShouldEmit(ScopeItem) || LevelDetail.ShouldEmit(ScopeOp) {
		t.Fatalf("detail level should stop at items")
	}
	if !LevelDebug.ShouldEmit(ScopeOp) {
		t.Fatalf("debug level should emit ops")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopeCommand, "check", 0)
	child := Begin(tr, ScopeItem, "property:add", root.ID())
	child.WithExtra("cases", "64").End("ok")
	Begin(tr, ScopeOp, "mul", child.ID()).End("")
	root.End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ command check") {
		t.Fatalf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[2], "← item property:add (ok) {cases=64}") {
		t.Fatalf("third line = %q", lines[2])
	}
	if strings.Contains(out, "mul") {
		t.Fatalf("op scope leaked at detail level:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Point(tr, ScopeStage, "config", "bigword.toml", 0)

	out := buf.String()
	for _, want := range []string{`"kind":"point"`, `"scope":"stage"`, `"name":"config"`, `"detail":"bigword.toml"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %s", out, want)
		}
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelError)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeOp, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len(Snapshot) = %d, want 3", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Fatalf("Snapshot[%d].Name = %q, want %q", i, snap[i].Name, want)
		}
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 3 {
		t.Fatalf("Dump wrote %d lines, want 3", got)
	}
}

func TestStreamTracerSilentAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatText)
	Begin(tr, ScopeCommand, "check", 0).End("")
	if buf.Len() != 0 {
		t.Fatalf("error level streamed %q", buf.String())
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelPhase)
	m := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), ring)

	Begin(m, ScopeStage, "load", 0).End("")

	if got, ok := m.Ring(); !ok || got != ring {
		t.Fatalf("Ring() did not return the ring tracer")
	}
	if n := len(ring.Snapshot()); n != 2 {
		t.Fatalf("ring holds %d events, want 2", n)
	}
	if !strings.Contains(buf.String(), "stage load") {
		t.Fatalf("stream output = %q", buf.String())
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer reports enabled")
	}
	if d := Begin(tr, ScopeCommand, "x", 0).End(""); d != 0 {
		t.Fatalf("nop span duration = %v", d)
	}
}

func TestContextPropagation(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != tr {
		t.Fatalf("FromContext lost the tracer")
	}
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context should yield Nop")
	}

	span := Begin(FromContext(ctx), ScopeCommand, "eval", 0)
	ctx = span.Context(ctx)
	if got := CurrentSpan(ctx).SpanID; got != span.ID() {
		t.Fatalf("CurrentSpan = %d, want %d", got, span.ID())
	}
	if got := ParentID(ctx); got != span.ID() {
		t.Fatalf("ParentID = %d, want %d", got, span.ID())
	}
	if got := ParentID(context.Background()); got != 0 {
		t.Fatalf("ParentID of a bare context = %d, want 0", got)
	}

	item := Begin(FromContext(ctx), ScopeItem, "calc.eval", ParentID(ctx))
	if got := ParentID(item.Context(ctx)); got != item.ID() || item.ID() == span.ID() {
		t.Fatalf("nested ParentID = %d, item %d, command %d", got, item.ID(), span.ID())
	}
}
