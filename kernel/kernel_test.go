package kernel

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/korulabs/koru/core"
	"github.com/korulabs/koru/memory"
	"github.com/korulabs/koru/memory/embedder/mock"
	"github.com/korulabs/koru/memory/store/vectordb"
)

// fakeProvider replays canned text and records the messages it was sent.
type fakeProvider struct {
	text string
	err  error
	got  []core.ChatMessage
	opts core.GenerateOptions
}

func (f *fakeProvider) Generate(_ context.Context, messages []core.ChatMessage, opts core.GenerateOptions) (*core.GenerateResult, error) {
	f.got = messages
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return &core.GenerateResult{Text: f.text}, nil
}

// failingEmbedder makes every memory operation fail.
type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("embedding service down")
}

func (failingEmbedder) Dimensions() int { return 8 }

func newTestKernel(p *fakeProvider, opts ...Option) *Kernel {
	llm := NewLLMManager()
	llm.LoadModel("test", p)
	return New(llm, opts...)
}

func TestProcessInputMessageOrder(t *testing.T) {
	p := &fakeProvider{text: "ok"}
	k := newTestKernel(p)

	out, err := k.ProcessInput(context.Background(), &Request{
		Text:         "question",
		SystemPrompt: "be terse",
		Context:      []core.ChatMessage{core.AssistantMessage("earlier answer")},
		Options:      core.GenerateOptions{Temperature: 0.5, MaxTokens: 10},
	})
	if err != nil {
		t.Fatalf("ProcessInput failed: %v", err)
	}
	if out != "ok" {
		t.Errorf("output = %q, want ok", out)
	}

	if len(p.got) != 3 {
		t.Fatalf("provider saw %d messages, want 3", len(p.got))
	}
	if p.got[0].Role != core.RoleSystem || p.got[0].Content != "be terse" {
		t.Errorf("first message = %+v, want system prompt", p.got[0])
	}
	if p.got[1].Role != core.RoleAssistant {
		t.Errorf("second message = %+v, want prior context", p.got[1])
	}
	if p.got[2].Role != core.RoleUser || p.got[2].Content != "question" {
		t.Errorf("last message = %+v, want user text", p.got[2])
	}
	if p.opts.Temperature != 0.5 || p.opts.MaxTokens != 10 {
		t.Errorf("options = %+v, want passthrough", p.opts)
	}
}

func TestProcessInputInjectsMemoryBlock(t *testing.T) {
	emb := mock.NewWithDimensions(8)
	mem := memory.New(vectordb.New(8), 8, memory.WithEmbedder(emb))
	if _, err := mem.StoreText(context.Background(), "user likes tea", nil); err != nil {
		t.Fatalf("seed memory: %v", err)
	}

	p := &fakeProvider{text: "noted"}
	k := newTestKernel(p, WithMemory(mem))

	if _, err := k.ProcessInput(context.Background(), &Request{Text: "what do I like?"}); err != nil {
		t.Fatalf("ProcessInput failed: %v", err)
	}

	var block string
	for _, msg := range p.got {
		if msg.Role == core.RoleSystem && strings.HasPrefix(msg.Content, "Relevant memory items") {
			block = msg.Content
		}
	}
	if block == "" {
		t.Fatal("no memory block injected")
	}
	if !strings.Contains(block, "- user likes tea") {
		t.Errorf("memory block = %q, want snippet line", block)
	}
	// The block precedes the user message.
	if p.got[len(p.got)-1].Role != core.RoleUser {
		t.Error("user message is not last")
	}
}

func TestProcessInputStoresExchange(t *testing.T) {
	emb := mock.NewWithDimensions(8)
	store := vectordb.New(8)
	mem := memory.New(store, 8, memory.WithEmbedder(emb))

	p := &fakeProvider{text: "the answer"}
	k := newTestKernel(p, WithMemory(mem))

	if _, err := k.ProcessInput(context.Background(), &Request{Text: "the question"}); err != nil {
		t.Fatalf("ProcessInput failed: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("store has %d records, want user text and model output", store.Len())
	}

	rec, ok := store.Get(context.Background(), "vec_1")
	if !ok || rec.Text != "the question" {
		t.Errorf("first record = %+v, want the user text", rec)
	}
	rec, ok = store.Get(context.Background(), "vec_2")
	if !ok || rec.Text != "the answer" {
		t.Errorf("second record = %+v, want the model output", rec)
	}
}

func TestProcessInputSkipsEmptyOutputStore(t *testing.T) {
	emb := mock.NewWithDimensions(8)
	store := vectordb.New(8)
	mem := memory.New(store, 8, memory.WithEmbedder(emb))

	p := &fakeProvider{text: ""}
	k := newTestKernel(p, WithMemory(mem))

	if _, err := k.ProcessInput(context.Background(), &Request{Text: "hello"}); err != nil {
		t.Fatalf("ProcessInput failed: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("store has %d records, want only the user text", store.Len())
	}
}

func TestProcessInputSurvivesMemoryFailure(t *testing.T) {
	mem := memory.New(vectordb.New(8), 8, memory.WithEmbedder(failingEmbedder{}))

	p := &fakeProvider{text: "still works"}
	k := newTestKernel(p, WithMemory(mem))

	out, err := k.ProcessInput(context.Background(), &Request{Text: "hi"})
	if err != nil {
		t.Fatalf("ProcessInput failed on memory error: %v", err)
	}
	if out != "still works" {
		t.Errorf("output = %q, want model text despite memory failure", out)
	}
}

func TestProcessInputModelFailureIsFatal(t *testing.T) {
	boom := errors.New("rate limited")
	p := &fakeProvider{err: boom}
	k := newTestKernel(p)

	_, err := k.ProcessInput(context.Background(), &Request{Text: "hi"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the provider error, got %v", err)
	}
}

func TestGenerateWithoutActiveModel(t *testing.T) {
	k := New(NewLLMManager())
	_, err := k.ProcessInput(context.Background(), &Request{Text: "hi"})
	if !errors.Is(err, ErrNoActiveModel) {
		t.Fatalf("expected ErrNoActiveModel, got %v", err)
	}
}

func TestLLMManagerActiveSelection(t *testing.T) {
	a := &fakeProvider{text: "from a"}
	b := &fakeProvider{text: "from b"}

	m := NewLLMManager()
	m.LoadModel("a", a)
	m.LoadModel("b", b)

	// First loaded model is active.
	res, err := m.Generate(context.Background(), nil, core.GenerateOptions{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Text != "from a" {
		t.Errorf("active model answered %q, want from a", res.Text)
	}

	if !m.SetActiveModel("b") {
		t.Fatal("SetActiveModel failed for loaded model")
	}
	if m.SetActiveModel("missing") {
		t.Error("SetActiveModel succeeded for unknown model")
	}

	res, _ = m.Generate(context.Background(), nil, core.GenerateOptions{})
	if res.Text != "from b" {
		t.Errorf("after switch got %q, want from b", res.Text)
	}

	// Unloading the active model clears the selection.
	if !m.UnloadModel("b") {
		t.Fatal("UnloadModel failed")
	}
	if _, err := m.Generate(context.Background(), nil, core.GenerateOptions{}); !errors.Is(err, ErrNoActiveModel) {
		t.Errorf("expected ErrNoActiveModel after unload, got %v", err)
	}

	names := m.ListModels()
	if len(names) != 1 || names[0] != "a" {
		t.Errorf("ListModels = %v, want [a]", names)
	}
}
