package translation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"subtrans/internal/services"
)

type fakeGenerator struct {
	calls   []string
	models  []string
	outputs []string
	errs    []error
}

func (f *fakeGenerator) Generate(_ context.Context, model, prompt string) (string, error) {
	i := len(f.calls)
	f.calls = append(f.calls, prompt)
	f.models = append(f.models, model)
	var out string
	var err error
	if i < len(f.outputs) {
		out = f.outputs[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return out, err
}

func TestPerSegmentPromptAndModel(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"Hello.", "你好"}}
	backend := NewPerSegment(gen, PerSegmentConfig{
		SourceLanguage: "es",
		Model:          "llama3",
		ModelOverrides: map[string]string{"zh": "qwen:7b-chat"},
	})
	if backend.BatchSize() != 1 || backend.Name() != "ollama" {
		t.Fatalf("unexpected backend identity %s/%d", backend.Name(), backend.BatchSize())
	}

	res := backend.TranslateBatch(context.Background(), []string{"Hola."}, "en")
	if len(res) != 1 || res[0].Err != nil || res[0].Text != "Hello." {
		t.Fatalf("unexpected result %+v", res)
	}
	want := `Translate the following Spanish text to English. Provide ONLY the translated text. Text to translate: "Hola."`
	if gen.calls[0] != want {
		t.Fatalf("unexpected prompt:\n got %q\nwant %q", gen.calls[0], want)
	}
	if gen.models[0] != "llama3" {
		t.Fatalf("unexpected model %q", gen.models[0])
	}

	backend.TranslateBatch(context.Background(), []string{"Hola"}, "zh")
	if gen.models[1] != "qwen:7b-chat" {
		t.Fatalf("expected override model, got %q", gen.models[1])
	}
	if !strings.Contains(gen.calls[1], "Hanzi") {
		t.Fatalf("expected chinese instruction, got %q", gen.calls[1])
	}
}

func TestPerSegmentRetryExhaustion(t *testing.T) {
	boom := services.Wrap(services.ErrTransient, "ollama", "generate", "exit 1", nil)
	gen := &fakeGenerator{errs: []error{boom, boom, boom, boom}}
	var sleeps []time.Duration
	backend := NewPerSegment(gen, PerSegmentConfig{
		SourceLanguage: "es",
		Model:          "llama3",
		MaxRetries:     3,
		RetryDelay:     5 * time.Second,
	}, WithSleeper(func(d time.Duration) { sleeps = append(sleeps, d) }))

	res := backend.TranslateBatch(context.Background(), []string{"Hola"}, "fr")
	if len(gen.calls) != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", len(gen.calls))
	}
	if len(sleeps) != 2 || sleeps[0] != 5*time.Second || sleeps[1] != 5*time.Second {
		t.Fatalf("expected two 5s delays between attempts, got %v", sleeps)
	}
	if !errors.Is(res[0].Err, services.ErrSegment) {
		t.Fatalf("expected segment failure, got %v", res[0].Err)
	}
}

func TestPerSegmentRecoversOnRetry(t *testing.T) {
	boom := errors.New("timeout")
	gen := &fakeGenerator{errs: []error{boom, nil}, outputs: []string{"", "Bonjour"}}
	var sleeps int
	backend := NewPerSegment(gen, PerSegmentConfig{Model: "llama3", RetryDelay: time.Second}, WithSleeper(func(time.Duration) { sleeps++ }))

	res := backend.TranslateBatch(context.Background(), []string{"Hola"}, "fr")
	if res[0].Err != nil || res[0].Text != "Bonjour" {
		t.Fatalf("unexpected result %+v", res[0])
	}
	if len(gen.calls) != 2 || sleeps != 1 {
		t.Fatalf("calls=%d sleeps=%d", len(gen.calls), sleeps)
	}
}

func TestPerSegmentUnavailableStopsBatch(t *testing.T) {
	unavailable := services.Wrap(services.ErrBackendUnavailable, "ollama", "spawn", "not found", nil)
	gen := &fakeGenerator{errs: []error{unavailable}}
	backend := NewPerSegment(gen, PerSegmentConfig{Model: "llama3"}, WithSleeper(func(time.Duration) {
		t.Fatal("spawn failure must not be retried")
	}))

	res := backend.TranslateBatch(context.Background(), []string{"uno", "dos"}, "de")
	if len(gen.calls) != 1 {
		t.Fatalf("expected a single call, got %d", len(gen.calls))
	}
	for i, r := range res {
		if !errors.Is(r.Err, services.ErrBackendUnavailable) {
			t.Fatalf("slot %d: expected unavailable, got %v", i, r.Err)
		}
	}
}

func TestPerSegmentSkipsBlankText(t *testing.T) {
	gen := &fakeGenerator{}
	backend := NewPerSegment(gen, PerSegmentConfig{Model: "llama3"})
	res := backend.TranslateBatch(context.Background(), []string{"  "}, "it")
	if len(gen.calls) != 0 || res[0].Err != nil || res[0].Text != "  " {
		t.Fatalf("unexpected handling of blank text: calls=%d res=%+v", len(gen.calls), res[0])
	}
}

func TestPerSegmentUnsupportedLanguage(t *testing.T) {
	gen := &fakeGenerator{}
	backend := NewPerSegment(gen, PerSegmentConfig{Model: "llama3"})
	res := backend.TranslateBatch(context.Background(), []string{"Hola"}, "ja")
	if len(gen.calls) != 0 {
		t.Fatal("backend called for unsupported language")
	}
	if !errors.Is(res[0].Err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", res[0].Err)
	}
}
