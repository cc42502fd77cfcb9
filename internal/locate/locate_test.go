package locate_test

import (
	"errors"
	"testing"

	"github.com/0x6d61/claunch/internal/locate"
)

// probeRecorder は探索プリミティブの呼び出しを記録するテストダブル。
type probeRecorder struct {
	statCalls     []string
	lookPathCalls []string
	statHit       string // このパスだけ存在するとみなす
	lookPathHit   map[string]string
}

func (p *probeRecorder) stat(path string) bool {
	p.statCalls = append(p.statCalls, path)
	return path == p.statHit
}

func (p *probeRecorder) lookPath(name string) (string, error) {
	p.lookPathCalls = append(p.lookPathCalls, name)
	if hit, ok := p.lookPathHit[name]; ok {
		return hit, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func newLocator(rec *probeRecorder, candidates, dirs []string) *locate.Locator {
	l := locate.New(candidates, dirs)
	l.SetProbesForTest(rec.stat, rec.lookPath)
	l.SetLogfForTest(func(string, ...any) {})
	return l
}

func TestLocate_WellKnownDirWinsOverPath(t *testing.T) {
	rec := &probeRecorder{
		statHit:     "/opt/homebrew/bin/claude",
		lookPathHit: map[string]string{"claude": "/usr/bin/claude"},
	}
	l := newLocator(rec, []string{"claude", "claude-code"}, []string{"/opt/homebrew/bin", "/usr/local/bin"})

	path, ok := l.Locate()
	if !ok || path != "/opt/homebrew/bin/claude" {
		t.Fatalf("Locate: got (%q, %v), want well-known dir hit", path, ok)
	}
	if len(rec.lookPathCalls) != 0 {
		t.Errorf("LookPath should not be consulted after a dir hit: %v", rec.lookPathCalls)
	}
}

func TestLocate_FallsBackToLookPath(t *testing.T) {
	rec := &probeRecorder{
		lookPathHit: map[string]string{"claude-code": "/usr/local/bin/claude-code"},
	}
	l := newLocator(rec, []string{"claude", "claude-code"}, []string{"/opt/homebrew/bin"})

	path, ok := l.Locate()
	if !ok || path != "/usr/local/bin/claude-code" {
		t.Fatalf("Locate: got (%q, %v), want lookpath hit", path, ok)
	}
}

func TestLocate_RejectsMalformedLookupResults(t *testing.T) {
	cases := map[string]string{
		"relative":  "bin/claude",
		"multiline": "/usr/bin/claude\n/opt/claude",
	}
	for name, result := range cases {
		rec := &probeRecorder{lookPathHit: map[string]string{"claude": result}}
		l := newLocator(rec, []string{"claude"}, nil)
		if path, ok := l.Locate(); ok {
			t.Errorf("%s: accepted malformed result %q", name, path)
		}
	}
}

func TestLocate_InvalidNamesNeverReachProbes(t *testing.T) {
	rec := &probeRecorder{}
	l := newLocator(rec, []string{"claude; rm -rf /", "../claude", "cl aude", ""}, []string{"/usr/local/bin"})

	if path, ok := l.Locate(); ok {
		t.Fatalf("Locate accepted invalid candidates: %q", path)
	}
	if len(rec.statCalls) != 0 {
		t.Errorf("stat was called for invalid names: %v", rec.statCalls)
	}
	if len(rec.lookPathCalls) != 0 {
		t.Errorf("LookPath was called for invalid names: %v", rec.lookPathCalls)
	}
}

func TestGetOrLocate_ProbesOnlyOnce(t *testing.T) {
	rec := &probeRecorder{statHit: "/usr/local/bin/claude"}
	l := newLocator(rec, []string{"claude"}, []string{"/usr/local/bin"})

	first, ok := l.GetOrLocate()
	if !ok {
		t.Fatal("first GetOrLocate failed")
	}
	statCalls := len(rec.statCalls)

	second, ok := l.GetOrLocate()
	if !ok || second != first {
		t.Fatalf("second GetOrLocate: got (%q, %v), want cached %q", second, ok, first)
	}
	if len(rec.statCalls) != statCalls {
		t.Errorf("probing ran again on cached call: %d -> %d stat calls", statCalls, len(rec.statCalls))
	}
}

func TestGetOrLocate_CachesNotFound(t *testing.T) {
	rec := &probeRecorder{}
	l := newLocator(rec, []string{"claude"}, []string{"/usr/local/bin"})

	if _, ok := l.GetOrLocate(); ok {
		t.Fatal("expected not found")
	}
	calls := len(rec.statCalls) + len(rec.lookPathCalls)

	// 「見つからない」も確定結果として凍結される
	if _, ok := l.GetOrLocate(); ok {
		t.Fatal("expected cached not found")
	}
	if got := len(rec.statCalls) + len(rec.lookPathCalls); got != calls {
		t.Errorf("probing ran again after cached miss: %d -> %d calls", calls, got)
	}
}
