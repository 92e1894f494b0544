package llm

import "context"

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}

// Embedder produces a semantic vector for a moment's text. Optional: a
// provider without an embedding endpoint simply does not implement it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Transcriber converts a downloaded voice note into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}
