package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/ctree/internal/fileproc"
	"github.com/panbanda/ctree/internal/output"
	"github.com/panbanda/ctree/internal/progress"
	"github.com/panbanda/ctree/internal/scanner"
	"github.com/panbanda/ctree/pkg/config"
	"github.com/panbanda/ctree/pkg/ctree"
	"github.com/panbanda/ctree/pkg/ctree/treesitter"
	"github.com/panbanda/ctree/pkg/query"
)

func funcsCmd() *cli.Command {
	return &cli.Command{
		Name:      "funcs",
		Usage:     "List the functions of one or more pseudocode files",
		ArgsUsage: "<file|dir...>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Files lifted at once (default: 2x CPUs)",
			},
		},
		Action: runFuncsCmd,
	}
}

type funcRow struct {
	File        string `json:"file" toon:"file"`
	Name        string `json:"name" toon:"name"`
	Address     string `json:"address" toon:"address"`
	Fingerprint string `json:"fingerprint" toon:"fingerprint"`
	ctree.Stats
}

type fileFuncs struct {
	path  string
	funcs []*ctree.Func
}

func runFuncsCmd(c *cli.Context) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("missing pseudocode file argument")
	}

	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	files, err = scanner.NewScanner(s.cfg).Expand(files)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no pseudocode files found")
	}

	opts := fileproc.Options{
		MaxWorkers: c.Int("workers"),
		Provider:   s.providerOptions(),
	}
	var tracker *progress.Tracker
	if progress.Enabled(len(files)) {
		tracker = progress.NewTracker("Lifting...", len(files))
		opts.OnProgress = tracker.Tick
	}

	results, errs := fileproc.MapFiles(c.Context, files, opts, func(p *treesitter.Provider, path string) (fileFuncs, error) {
		funcs, err := s.lift(p, path)
		return fileFuncs{path: path, funcs: funcs}, err
	})
	if tracker != nil {
		if errs != nil {
			tracker.FinishError(errs.Len())
		} else {
			tracker.FinishSuccess()
		}
	}
	if errs != nil {
		for _, e := range errs.Errors {
			s.diag.Warning("%v", e)
		}
		if len(results) == 0 {
			return errs
		}
	}

	table := output.NewTable("Functions", "File", "Name", "Address", "Insns", "Exprs", "Depth", "Fingerprint")
	var data []funcRow
	for _, r := range results {
		for _, fn := range r.funcs {
			row := funcRow{
				File:        filepath.Base(r.path),
				Name:        fn.Name,
				Address:     hexAddr(fn.EA),
				Fingerprint: fmt.Sprintf("%016x", fn.Fingerprint()),
				Stats:       fn.Stats(),
			}
			data = append(data, row)
			table.Add(row.File, row.Name, row.Address,
				strconv.Itoa(row.Insns), strconv.Itoa(row.Exprs), strconv.Itoa(row.MaxDepth),
				row.Fingerprint)
		}
	}
	s.diag.Debug("%d function(s) in %d file(s)", len(data), len(results))

	return s.out.Output(table.
		WithFooter("Total", strconv.Itoa(len(data)), "", "", "", "", "").
		WithData(data))
}

func stmtCmd() *cli.Command {
	return &cli.Command{
		Name:      "stmt",
		Usage:     "Show the statement enclosing the expression at an address",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			funcFlag,
			noCacheFlag,
			&cli.StringSliceFlag{
				Name:     "addr",
				Aliases:  []string{"a"},
				Usage:    "Expression address (repeatable)",
				Required: true,
			},
		},
		Action: runStmtCmd,
	}
}

type stmtRow struct {
	Addr      string `json:"addr" toon:"addr"`
	Expr      string `json:"expr" toon:"expr"`
	Statement string `json:"statement" toon:"statement"`
	StmtAddr  string `json:"statement_addr" toon:"statement_addr"`
	Block     string `json:"block,omitempty" toon:"block,omitempty"`
	Index     *int   `json:"index,omitempty" toon:"index,omitempty"`
}

func runStmtCmd(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	fn, err := s.loadFunc(c)
	if err != nil {
		return err
	}
	addrs, err := parsedAddrs(c)
	if err != nil {
		return err
	}
	cache := s.cache(c)

	table := output.NewTable(fn.Name, "Addr", "Expr", "Statement", "Stmt Addr", "Block", "Index")
	var data []stmtRow
	for _, addr := range addrs {
		e, err := exprAt(fn, addr, cache)
		if err != nil {
			return err
		}
		stmt, err := query.StatementOf(fn, e, cache)
		if err != nil {
			return fmt.Errorf("%s: %w", hexAddr(addr), err)
		}

		row := stmtRow{
			Addr:      hexAddr(addr),
			Expr:      ctree.String(e),
			Statement: ctree.String(stmt),
			StmtAddr:  hexAddr(stmt.EA),
		}
		block, index := "-", "-"
		_, idx, err := query.BlockPos(fn, stmt, parents(fn, cache))
		switch {
		case err == nil:
			row.Block = hexAddr(query.BlockInsn(fn, stmt, parents(fn, cache)).EA)
			row.Index = &idx
			block, index = row.Block, strconv.Itoa(idx)
		case errors.Is(err, query.ErrNoBlock):
			s.diag.Debug("%s: statement is not directly in a block", row.Addr)
		default:
			return fmt.Errorf("%s: %w", row.Addr, err)
		}

		data = append(data, row)
		table.Add(row.Addr, row.Expr, row.Statement, row.StmtAddr, block, index)
	}

	return s.out.Output(table.WithData(data))
}

func posCmd() *cli.Command {
	return &cli.Command{
		Name:      "pos",
		Usage:     "Show the block and index of the statement enclosing an address",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			funcFlag,
			noCacheFlag,
			&cli.StringFlag{
				Name:     "addr",
				Aliases:  []string{"a"},
				Usage:    "Expression address",
				Required: true,
			},
		},
		Action: runPosCmd,
	}
}

type posResult struct {
	Statement string `json:"statement" toon:"statement"`
	Block     string `json:"block" toon:"block"`
	Index     int    `json:"index" toon:"index"`
	BlockLen  int    `json:"block_len" toon:"block_len"`
}

func runPosCmd(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	fn, err := s.loadFunc(c)
	if err != nil {
		return err
	}
	addr, err := config.ParseAddr(c.String("addr"))
	if err != nil {
		return err
	}
	cache := s.cache(c)

	stmt, err := statementAt(fn, addr, cache)
	if err != nil {
		return err
	}
	blk, idx, err := query.BlockPos(fn, stmt, parents(fn, cache))
	if err != nil {
		return fmt.Errorf("%s: %w", hexAddr(addr), err)
	}

	res := posResult{
		Statement: ctree.String(stmt),
		Block:     hexAddr(query.BlockInsn(fn, stmt, parents(fn, cache)).EA),
		Index:     idx,
		BlockLen:  blk.Len(),
	}
	return s.out.Output(output.NewTable("", "Statement", "Block", "Index", "Block Len").
		Add(res.Statement, res.Block, strconv.Itoa(res.Index), strconv.Itoa(res.BlockLen)).
		WithData(res))
}

func topmostCmd() *cli.Command {
	return &cli.Command{
		Name:      "topmost",
		Usage:     "Reduce the statements enclosing several addresses to the outermost ones",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			funcFlag,
			&cli.StringSliceFlag{
				Name:     "addr",
				Aliases:  []string{"a"},
				Usage:    "Expression address (repeatable)",
				Required: true,
			},
		},
		Action: runTopmostCmd,
	}
}

func runTopmostCmd(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	fn, err := s.loadFunc(c)
	if err != nil {
		return err
	}
	addrs, err := parsedAddrs(c)
	if err != nil {
		return err
	}

	cache := &query.Cache{}
	stmts := make([]*ctree.Insn, 0, len(addrs))
	for _, addr := range addrs {
		stmt, err := statementAt(fn, addr, cache)
		if err != nil {
			return err
		}
		stmts = append(stmts, stmt)
	}

	pm := cache.Parents(fn)
	kept := query.KeepTopmostInsns(pm, stmts)
	s.diag.Debug("kept %d of %d statement(s)", len(kept), len(stmts))

	list := &output.NodeList{Title: "Topmost statements", Label: "Statement"}
	for _, insn := range kept {
		list.Rows = append(list.Rows, nodeRow(insn, pm))
	}
	return s.out.Output(list)
}

func findCmd() *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "List expressions, optionally filtered by operator",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			funcFlag,
			&cli.StringFlag{
				Name:  "op",
				Usage: "Only expressions with this operator (call, asg, var, ...)",
			},
			&cli.StringFlag{
				Name:  "within",
				Usage: "Search only the statement enclosing this address",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Stop after this many matches (default from config, 0 = all)",
				Value: -1,
			},
		},
		Action: runFindCmd,
	}
}

func runFindCmd(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	fn, err := s.loadFunc(c)
	if err != nil {
		return err
	}

	limit := c.Int("limit")
	if limit < 0 {
		limit = s.cfg.Query.SearchLimit
	}
	op := ctree.ExprOp(strings.ToLower(c.String("op")))

	cache := &query.Cache{}
	var within ctree.Node
	if w := c.String("within"); w != "" {
		addr, err := config.ParseAddr(w)
		if err != nil {
			return err
		}
		stmt, err := statementAt(fn, addr, cache)
		if err != nil {
			return err
		}
		within = stmt
	}
	pm := cache.Parents(fn)

	list := &output.NodeList{Title: "Expressions", Label: "Expr", Total: true}
	err = query.ForEachExpr(fn, func(e *ctree.Expr) ctree.Signal {
		if op != "" && e.Op != op {
			return ctree.Continue
		}
		list.Rows = append(list.Rows, nodeRow(e, pm))
		if limit > 0 && len(list.Rows) >= limit {
			return ctree.Stop
		}
		return ctree.Continue
	}, within)
	if err != nil {
		return err
	}

	return s.out.Output(list)
}

func treeCmd() *cli.Command {
	return &cli.Command{
		Name:      "tree",
		Usage:     "Dump every node of a function with address, kind and depth",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{funcFlag},
		Action:    runTreeCmd,
	}
}

func runTreeCmd(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	fn, err := s.loadFunc(c)
	if err != nil {
		return err
	}

	pm := query.BuildParentMap(fn.Body)
	s.diag.Debug("parent map holds %d node(s)", pm.Len())

	list := &output.NodeList{Title: fmt.Sprintf("%s @ %s", fn.Name, hexAddr(fn.EA)), Indent: true}
	add := func(n ctree.Node) ctree.Signal {
		list.Rows = append(list.Rows, nodeRow(n, pm))
		return ctree.Continue
	}
	ctree.Walk(fn.Body, nil, ctree.VisitorFuncs{
		Expr: func(e *ctree.Expr, _ ctree.Node) ctree.Signal { return add(e) },
		Insn: func(i *ctree.Insn, _ ctree.Node) ctree.Signal { return add(i) },
	})

	return s.out.Output(list)
}
