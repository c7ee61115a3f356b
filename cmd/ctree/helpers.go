package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/ctree/internal/output"
	"github.com/panbanda/ctree/pkg/config"
	"github.com/panbanda/ctree/pkg/ctree"
	"github.com/panbanda/ctree/pkg/ctree/treesitter"
	"github.com/panbanda/ctree/pkg/parser"
	"github.com/panbanda/ctree/pkg/query"
)

// errNoExpr is returned when no expression carries the requested address.
var errNoExpr = errors.New("no expression at address")

// session carries what every command needs: merged settings, the output
// formatter and the diagnostics writer.
type session struct {
	cfg  *config.Config
	out  *output.Formatter
	diag *output.Diag
}

// newSession loads config and applies global flags over it.
func newSession(c *cli.Context) (*session, error) {
	cfg := config.LoadOrDefault()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if f := c.String("format"); f != "" {
		cfg.Output.Format = f
	}
	if l := c.String("lang"); l != "" {
		cfg.Lift.Language = l
	}
	if b := c.String("base"); b != "" {
		cfg.Lift.Base = b
	}
	if c.Bool("no-color") {
		cfg.Output.Color = false
	}
	if c.Bool("verbose") {
		cfg.Output.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	format := output.ParseFormat(cfg.Output.Format)
	var out *output.Formatter
	if path := c.String("output"); path != "" {
		f, err := output.NewFormatter(format, path, false)
		if err != nil {
			return nil, err
		}
		out = f
	} else {
		out = output.NewWriterFormatter(format, c.App.Writer, cfg.Output.Color)
	}

	return &session{
		cfg:  cfg,
		out:  out,
		diag: output.NewWriterDiag(c.App.ErrWriter, cfg.Output.Color, cfg.Output.Verbose),
	}, nil
}

func (s *session) Close() error {
	return s.out.Close()
}

func (s *session) providerOptions() []treesitter.Option {
	return []treesitter.Option{treesitter.WithBase(s.cfg.BaseAddr())}
}

// lift parses one file with the configured language.
func (s *session) lift(p *treesitter.Provider, path string) ([]*ctree.Func, error) {
	if lang := s.cfg.Language(); lang != parser.LangUnknown {
		return p.ParseFileAs(path, lang)
	}
	return p.ParseFile(path)
}

// loadFunc lifts the command's file argument and picks the --func function.
func (s *session) loadFunc(c *cli.Context) (*ctree.Func, error) {
	path := c.Args().First()
	if path == "" {
		return nil, fmt.Errorf("missing pseudocode file argument")
	}

	p := treesitter.New(s.providerOptions()...)
	defer p.Close()

	funcs, err := s.lift(p, path)
	if err != nil {
		return nil, err
	}
	s.diag.Debug("lifted %d function(s) from %s", len(funcs), path)

	fn, err := treesitter.Function(funcs, c.String("func"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fn, nil
}

// cache returns a parent-map cache, or nil when caching is off.
func (s *session) cache(c *cli.Context) *query.Cache {
	if !s.cfg.Query.CacheParents || c.Bool("no-cache") {
		return nil
	}
	return &query.Cache{}
}

// exprAt finds the expression carrying addr. With a cache it reads the
// parent map's address index, otherwise it walks the function; both give
// the last expression visited with that address.
func exprAt(fn *ctree.Func, addr ctree.Addr, cache *query.Cache) (*ctree.Expr, error) {
	var found *ctree.Expr
	if cache != nil {
		found = cache.Parents(fn).ByAddr(addr)
	} else {
		err := query.ForEachExpr(fn, func(e *ctree.Expr) ctree.Signal {
			if e.EA == addr {
				found = e
			}
			return ctree.Continue
		}, nil)
		if err != nil {
			return nil, err
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%s: %w", hexAddr(addr), errNoExpr)
	}
	return found, nil
}

// statementAt resolves the statement enclosing the expression at addr.
func statementAt(fn *ctree.Func, addr ctree.Addr, cache *query.Cache) (*ctree.Insn, error) {
	e, err := exprAt(fn, addr, cache)
	if err != nil {
		return nil, err
	}
	stmt, err := query.StatementOf(fn, e, cache)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", hexAddr(addr), err)
	}
	return stmt, nil
}

// parsedAddrs parses the repeated --addr flag.
func parsedAddrs(c *cli.Context) ([]ctree.Addr, error) {
	raw := c.StringSlice("addr")
	if len(raw) == 0 {
		return nil, fmt.Errorf("at least one --addr is required")
	}
	addrs := make([]ctree.Addr, 0, len(raw))
	for _, r := range raw {
		a, err := config.ParseAddr(r)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, nil
}

func hexAddr(a ctree.Addr) string {
	if a == ctree.BadAddr {
		return "BADADDR"
	}
	return fmt.Sprintf("%#x", uint64(a))
}

// nodeRow describes n for a node listing.
func nodeRow(n ctree.Node, pm *query.ParentMap) output.NodeRow {
	return output.NodeRow{
		Addr:  hexAddr(n.Address()),
		Kind:  n.Kind(),
		Depth: pm.Depth(n),
		Text:  ctree.String(n),
	}
}

// parents returns the cached parent map, or nil to make helpers use the
// function's own lookups.
func parents(fn *ctree.Func, cache *query.Cache) *query.ParentMap {
	if cache == nil {
		return nil
	}
	return cache.Parents(fn)
}

var funcFlag = &cli.StringFlag{
	Name:  "func",
	Usage: "Function to query (default: first in the file)",
}

var noCacheFlag = &cli.BoolFlag{
	Name:  "no-cache",
	Usage: "Resolve parents by walking the function instead of building a parent map",
}
