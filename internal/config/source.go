package config

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/finhealth/internal/domain"
)

// ClientSource supplies the client book to the CLI and the TUI. The engine never
// depends on where clients come from.
type ClientSource interface {
	Clients(ctx context.Context) (*domain.ClientBook, error)
}

// StaticSource serves an in-memory book
type StaticSource struct {
	Book *domain.ClientBook
}

// NewSampleSource serves the built-in demonstration clients
func NewSampleSource() StaticSource {
	return StaticSource{Book: SampleBook()}
}

// Clients returns a copy of the book so callers cannot change the source
func (s StaticSource) Clients(ctx context.Context) (*domain.ClientBook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Book == nil {
		return nil, fmt.Errorf("static source has no client book")
	}
	return copyBook(s.Book), nil
}

// FileSource loads the book from disk on every call
type FileSource struct {
	Path   string
	Parser *InputParser
}

// NewFileSource reads path with a default parser
func NewFileSource(path string) FileSource {
	return FileSource{Path: path, Parser: NewInputParser()}
}

func (s FileSource) Clients(ctx context.Context) (*domain.ClientBook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parser := s.Parser
	if parser == nil {
		parser = NewInputParser()
	}
	return parser.LoadFromFile(s.Path)
}

// SourceFor returns a FileSource for path, or the sample source when path is empty
func SourceFor(path string, parser *InputParser) ClientSource {
	if path == "" {
		return NewSampleSource()
	}
	return FileSource{Path: path, Parser: parser}
}

func copyBook(b *domain.ClientBook) *domain.ClientBook {
	c := &domain.ClientBook{
		Currency: b.Currency,
		Clients:  make([]domain.ClientRecord, 0, len(b.Clients)),
		Rules:    append([]domain.RuleConfig(nil), b.Rules...),
	}
	if b.Policy != nil {
		p := *b.Policy
		c.Policy = &p
	}
	for _, r := range b.Clients {
		c.Clients = append(c.Clients, r.DeepCopy())
	}
	return c
}
