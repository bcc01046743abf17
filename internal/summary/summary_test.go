// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"postdesk/internal/ai"
	"postdesk/internal/models"
)

// fixedPicker always returns the same index.
type fixedPicker int

func (p fixedPicker) IntN(int) int { return int(p) }

// seqPicker returns successive indexes from a list.
type seqPicker struct {
	idx []int
	pos int
}

func (p *seqPicker) IntN(int) int {
	i := p.idx[p.pos%len(p.idx)]
	p.pos++
	return i
}

// mockCompleter records calls and returns a configured answer.
type mockCompleter struct {
	configured bool
	response   string
	err        error
	calls      int
	lastReq    ai.Request
	hasDL      bool
}

func (m *mockCompleter) Configured() bool { return m.configured }

func (m *mockCompleter) Generate(ctx context.Context, req ai.Request) (string, error) {
	m.calls++
	m.lastReq = req
	_, m.hasDL = ctx.Deadline()
	return m.response, m.err
}

// ---------- Fallback ----------

func TestFallbackContainsTitle(t *testing.T) {
	titles := []string{"X", "Ön Yazı", `Quote "inside" title`, "   ", "React ile modern dashboard tasarımı"}
	for _, title := range titles {
		for i := 0; i < 3; i++ {
			got := Fallback(title, fixedPicker(i))
			if !strings.Contains(got, title) {
				t.Errorf("Fallback(%q) = %q, missing title", title, got)
			}
		}
	}
}

func TestFallbackDeterministicWithPicker(t *testing.T) {
	p := &seqPicker{idx: []int{2, 0, 1}}
	got := Fallback("Go", p)
	want := `Kısa özet: "Go" — ` + intros[2] + " " + middles[0] + " " + endings[1]
	if got != want {
		t.Errorf("Fallback:\n got %q\nwant %q", got, want)
	}
}

func TestFallbackOutOfRangePickerClamped(t *testing.T) {
	got := Fallback("Go", fixedPicker(99))
	if !strings.Contains(got, intros[0]) {
		t.Errorf("out-of-range picks should use the first sentence: %q", got)
	}
}

func TestFallbackNilPicker(t *testing.T) {
	if got := Fallback("Go", nil); !strings.Contains(got, "Go") {
		t.Errorf("Fallback with nil picker = %q", got)
	}
}

// ---------- Generator ----------

func TestGenerateWithoutCredentialNeverCallsRemote(t *testing.T) {
	m := &mockCompleter{configured: false, response: "should not be used"}
	g := New(m, Options{Picker: fixedPicker(0)})

	for _, title := range []string{"Hello", "X", "Ön Yazı"} {
		res := g.Generate(context.Background(), title)
		if res.Source != models.SourceFallback {
			t.Errorf("Generate(%q).Source = %q, want fallback", title, res.Source)
		}
		if !strings.Contains(res.Summary, title) {
			t.Errorf("Generate(%q).Summary missing title: %q", title, res.Summary)
		}
	}
	if m.calls != 0 {
		t.Errorf("remote calls = %d, want 0", m.calls)
	}
}

func TestGenerateNilCompleter(t *testing.T) {
	g := New(nil, Options{})
	if g.Remote() {
		t.Error("Remote() should be false with nil completer")
	}
	res := g.Generate(context.Background(), "Title")
	if res.Source != models.SourceFallback {
		t.Errorf("Source = %q, want fallback", res.Source)
	}
}

func TestGenerateRemoteSuccess(t *testing.T) {
	m := &mockCompleter{configured: true, response: "  Harika bir özet.  "}
	g := New(m, Options{})

	res := g.Generate(context.Background(), " Go ile API ")
	if res.Source != models.SourceRemote {
		t.Errorf("Source = %q, want remote", res.Source)
	}
	if res.Summary != "Harika bir özet." {
		t.Errorf("Summary = %q, want trimmed text", res.Summary)
	}

	if m.lastReq.SystemPrompt != SystemPrompt {
		t.Errorf("system prompt = %q", m.lastReq.SystemPrompt)
	}
	if m.lastReq.UserPrompt != `"Go ile API" başlığı için blog özeti yaz.` {
		t.Errorf("user prompt = %q", m.lastReq.UserPrompt)
	}
	if m.lastReq.MaxTokens != 170 {
		t.Errorf("max tokens = %d, want 170", m.lastReq.MaxTokens)
	}
	if m.lastReq.Temperature == nil || *m.lastReq.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", m.lastReq.Temperature)
	}
	if !m.hasDL {
		t.Error("remote call should carry a deadline")
	}
}

func TestGenerateRemoteFailureFallsBack(t *testing.T) {
	var failures []error
	m := &mockCompleter{configured: true, err: errors.New("connection refused")}
	g := New(m, Options{
		Picker:          fixedPicker(1),
		OnRemoteFailure: func(_ string, err error) { failures = append(failures, err) },
	})

	res := g.Generate(context.Background(), "X")
	if res.Source != models.SourceFallback {
		t.Errorf("Source = %q, want fallback", res.Source)
	}
	if !strings.Contains(res.Summary, "X") {
		t.Errorf("Summary missing title: %q", res.Summary)
	}
	if len(failures) != 1 {
		t.Errorf("OnRemoteFailure calls = %d, want 1", len(failures))
	}
}

func TestGenerateEmptyRemoteText(t *testing.T) {
	t.Run("default keeps remote source", func(t *testing.T) {
		g := New(&mockCompleter{configured: true, response: "   "}, Options{Picker: fixedPicker(0)})
		res := g.Generate(context.Background(), "Boş")
		if res.Source != models.SourceRemote {
			t.Errorf("Source = %q, want remote", res.Source)
		}
		if !strings.Contains(res.Summary, "Boş") {
			t.Errorf("Summary should be the templated fallback: %q", res.Summary)
		}
	})

	t.Run("EmptyAsFallback reports fallback", func(t *testing.T) {
		g := New(&mockCompleter{configured: true, response: ""}, Options{EmptyAsFallback: true})
		res := g.Generate(context.Background(), "Boş")
		if res.Source != models.SourceFallback {
			t.Errorf("Source = %q, want fallback", res.Source)
		}
	})
}

// ---------- End to end through ai.Registry ----------

func registryFor(t *testing.T, h http.HandlerFunc) (*ai.Registry, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	reg := ai.NewRegistry("openai", map[string]ai.ProviderConfig{
		"openai": {APIKey: "test-key", BaseURL: srv.URL},
	})
	return reg, &hits
}

func TestGenerateRateLimitedScenario(t *testing.T) {
	reg, hits := registryFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota"}}`))
	})

	res := New(reg, Options{}).Generate(context.Background(), "X")
	if res.Source != models.SourceFallback {
		t.Errorf("Source = %q, want fallback", res.Source)
	}
	if res.Summary == "" || !strings.Contains(res.Summary, "X") {
		t.Errorf("Summary = %q, want non-empty text containing X", res.Summary)
	}
	if hits.Load() != 1 {
		t.Errorf("requests = %d, want exactly 1 (no retry)", hits.Load())
	}
}

func TestGenerateServerErrorAndBadBody(t *testing.T) {
	handlers := map[string]http.HandlerFunc{
		"500": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{oops`))
		},
		"no choices": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		},
	}

	for name, h := range handlers {
		t.Run(name, func(t *testing.T) {
			reg, _ := registryFor(t, h)
			res := New(reg, Options{}).Generate(context.Background(), "Başlık")
			if res.Source != models.SourceFallback {
				t.Errorf("Source = %q, want fallback", res.Source)
			}
		})
	}
}

// An empty choices array is a malformed reply and always falls back, while
// an empty content string is a well-formed empty answer tagged remote.
func TestGenerateEmptyChoicesVersusEmptyContent(t *testing.T) {
	tests := []struct {
		name string
		body string
		want models.GenerationSource
	}{
		{"empty choices", `{"choices":[]}`, models.SourceFallback},
		{"empty content", `{"choices":[{"message":{"role":"assistant","content":"  "}}]}`, models.SourceRemote},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, _ := registryFor(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			res := New(reg, Options{EmptyAsFallback: false}).Generate(context.Background(), "Boş")
			if res.Source != tt.want {
				t.Errorf("Source = %q, want %q", res.Source, tt.want)
			}
			if !strings.Contains(res.Summary, "Boş") {
				t.Errorf("Summary = %q, want the templated text", res.Summary)
			}
		})
	}
}

func TestGenerateRemoteEndToEnd(t *testing.T) {
	reg, _ := registryFor(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"role": "assistant", "content": "Uzaktan gelen özet."}},
			},
		})
	})

	res := New(reg, Options{}).Generate(context.Background(), "Başlık")
	if res.Source != models.SourceRemote || res.Summary != "Uzaktan gelen özet." {
		t.Errorf("Generate = %+v", res)
	}
}

func TestGenerateTimeoutFallsBack(t *testing.T) {
	reg, _ := registryFor(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	start := time.Now()
	res := New(reg, Options{Timeout: 50 * time.Millisecond}).Generate(context.Background(), "Yavaş")
	if res.Source != models.SourceFallback {
		t.Errorf("Source = %q, want fallback", res.Source)
	}
	if time.Since(start) > time.Second {
		t.Errorf("timeout not applied, took %s", time.Since(start))
	}
}
