// Package treesitter builds ctree functions from decompiler pseudocode
// parsed with tree-sitter.
package treesitter

import (
	"errors"
	"fmt"

	"github.com/panbanda/ctree/pkg/ctree"
	"github.com/panbanda/ctree/pkg/parser"
)

// ErrSyntax is returned when the pseudocode does not parse cleanly.
var ErrSyntax = errors.New("syntax error in pseudocode")

// ErrNoFunction is returned when a requested function is not in the file.
var ErrNoFunction = errors.New("function not found")

// Provider lifts pseudocode files into ctree functions.
type Provider struct {
	parser *parser.Parser
	base   ctree.Addr
}

// Option configures a Provider.
type Option func(*Provider)

// WithBase adds base to every lifted address.
func WithBase(base ctree.Addr) Option {
	return func(p *Provider) {
		p.base = base
	}
}

// New creates a new tree-sitter based provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		parser: parser.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile parses a pseudocode file and lifts every function definition.
func (p *Provider) ParseFile(path string) ([]*ctree.Func, error) {
	result, err := p.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Lift(result, p.base)
}

// ParseFileAs is ParseFile with the language forced.
func (p *Provider) ParseFileAs(path string, lang parser.Language) ([]*ctree.Func, error) {
	result, err := p.parser.ParseFileAs(path, lang)
	if err != nil {
		return nil, err
	}
	return Lift(result, p.base)
}

// Parse lifts every function definition in source.
func (p *Provider) Parse(source []byte, lang parser.Language, path string) ([]*ctree.Func, error) {
	result, err := p.parser.Parse(source, lang, path)
	if err != nil {
		return nil, err
	}
	return Lift(result, p.base)
}

// Close releases parser resources.
func (p *Provider) Close() {
	p.parser.Close()
}

// Function picks a function by name. An empty name picks the first one.
func Function(funcs []*ctree.Func, name string) (*ctree.Func, error) {
	for _, fn := range funcs {
		if name == "" || fn.Name == name {
			return fn, nil
		}
	}
	if name == "" {
		return nil, fmt.Errorf("no functions: %w", ErrNoFunction)
	}
	return nil, fmt.Errorf("%s: %w", name, ErrNoFunction)
}

// Lift converts every function definition of a parse result. Definitions
// without a body are skipped.
func Lift(result *parser.ParseResult, base ctree.Addr) ([]*ctree.Func, error) {
	root := result.Tree.RootNode()
	if bad := parser.FirstError(root); bad != nil {
		pos := bad.StartPoint()
		return nil, fmt.Errorf("%s:%d:%d: %w", result.Path, pos.Row+1, pos.Column+1, ErrSyntax)
	}

	var funcs []*ctree.Func
	for _, fn := range parser.GetFunctions(result) {
		if fn.Body == nil {
			continue
		}
		l := &lifter{source: result.Source, base: base}
		funcs = append(funcs, &ctree.Func{
			Name: fn.Name,
			EA:   l.addr(fn.Node),
			Body: l.block(fn.Body),
		})
	}
	return funcs, nil
}
