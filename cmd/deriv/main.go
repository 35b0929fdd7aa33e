package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/peterh/liner"
	"github.com/unixpickle/essentials"

	"github.com/zephyrtronium/deriv"
)

const (
	historyFile = ".deriv_history"
	prompt      = "d/dx> "
)

func main() {
	log.SetFlags(0)
	var (
		inname string
		at     [][2]string
		prec   int
		pr     printer
		tex    bool
		asjson bool
	)
	addat := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`evaluation points must be "name=value", not %q`, s)
		}
		at = append(at, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default first argument, or stdin lines if none)")
	flag.Func("at", "name=value point at which to evaluate results (any number of times)", addat)
	flag.IntVar(&prec, "p", 64, "precision of evaluation in bits")
	flag.BoolVar(&pr.tree, "tree", false, "print parse trees")
	flag.BoolVar(&tex, "latex", false, "print expressions as LaTeX")
	flag.BoolVar(&asjson, "json", false, "print expressions as JSON")
	flag.Parse()
	if prec <= 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}
	if tex && asjson {
		log.Fatal("-latex and -json are mutually exclusive")
	}

	pr.w = os.Stdout
	pr.errw = os.Stderr
	switch {
	case tex:
		pr.format = (*deriv.Node).LaTeX
	case asjson:
		pr.format = jsonString
	default:
		pr.format = (*deriv.Node).String
	}
	if len(at) > 0 {
		pr.ctx = deriv.NewContext(deriv.Prec(uint(prec)))
		var pts []string
		for _, d := range at {
			nm, vl := d[0], d[1]
			v, _, err := big.ParseFloat(vl, 10, uint(prec), big.ToNearestEven)
			if err != nil {
				log.Fatalf("setting %s: %v", nm, err)
			}
			pr.ctx.Set(nm, v)
			pts = append(pts, nm+"="+vl)
		}
		pr.point = strings.Join(pts, ", ")
	}

	if inname == "" && flag.NArg() > 0 {
		inname = flag.Arg(0)
	}
	if inname != "" {
		src, err := os.ReadFile(inname)
		if err != nil {
			log.Fatal(err)
		}
		if err := pr.file(string(src)); err != nil {
			log.Fatal(essentials.AddCtx(inname, err))
		}
		return
	}

	var in lineReader
	if isTerminal(os.Stdin) {
		in = newLinerReader()
	} else {
		in = bufLines{bufio.NewReader(os.Stdin)}
	}
	defer in.Close()
	if err := repl(in, &pr); err != nil {
		log.Fatal(err)
	}
}

// printer writes expressions and the results of processing them.
type printer struct {
	w, errw io.Writer
	format  func(*deriv.Node) string
	tree    bool
	// ctx evaluates printed expressions when non-nil.
	ctx   *deriv.Context
	point string
}

// show prints an expression with a label.
func (p *printer) show(label string, n *deriv.Node) {
	fmt.Fprintln(p.w, label+p.format(n))
	if p.tree {
		repr.New(p.w, repr.Indent("  "), repr.OmitEmpty(true)).Println(n.Tree())
	}
	if p.ctx != nil {
		v, err := p.ctx.Eval(n)
		if err != nil {
			fmt.Fprintf(p.w, "    at %s: %v\n", p.point, err)
			return
		}
		fmt.Fprintf(p.w, "    at %s: %g\n", p.point, v)
	}
}

// file parses a whole input, prints it, and prints its derivative.
func (p *printer) file(src string) error {
	e, err := deriv.ParseString(src)
	if err != nil {
		return err
	}
	p.show("", e)
	d, err := deriv.Derive(e)
	if err != nil {
		return err
	}
	p.show("d/dx => ", d)
	return nil
}

// line parses one REPL line, prints it, and prints the derivative of its
// simplified form.
func (p *printer) line(src string) error {
	e, err := deriv.ParseString(src)
	if err != nil {
		return err
	}
	p.show("", e)
	s, err := deriv.Simplify(e)
	if err != nil {
		return err
	}
	d, err := deriv.Derive(s)
	if err != nil {
		return err
	}
	p.show("d/dx => ", d)
	return nil
}

// repl processes lines until EOF or a line that is exactly "Exit". Lines
// include their terminators, so only an unterminated final "Exit" matches.
// Errors in individual lines are printed and do not stop the loop.
func repl(in lineReader, p *printer) error {
	for {
		line, err := in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if line == "Exit" {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := p.line(line); err != nil {
			fmt.Fprintln(p.errw, err)
		}
	}
}

// lineReader reads raw input lines, including their terminators.
type lineReader interface {
	ReadLine() (string, error)
	Close() error
}

type bufLines struct {
	r *bufio.Reader
}

func (b bufLines) ReadLine() (string, error) {
	line, err := b.r.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		return line, nil
	}
	return line, err
}

func (bufLines) Close() error { return nil }

// linerLines reads lines from a terminal with editing and history.
type linerLines struct {
	ln   *liner.State
	hist string
}

func newLinerReader() *linerLines {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	l := &linerLines{ln: ln}
	if home, err := os.UserHomeDir(); err == nil {
		l.hist = filepath.Join(home, historyFile)
		if f, err := os.Open(l.hist); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	return l
}

func (l *linerLines) ReadLine() (string, error) {
	line, err := l.ln.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl+C abandons the current line.
			return "\n", nil
		}
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		l.ln.AppendHistory(line)
	}
	// liner strips the terminator; put it back so lines compare the same
	// as lines read from a pipe.
	return line + "\n", nil
}

func (l *linerLines) Close() error {
	if l.hist != "" {
		if f, err := os.Create(l.hist); err == nil {
			_, _ = l.ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return l.ln.Close()
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func jsonString(n *deriv.Node) string {
	b, err := json.Marshal(n)
	if err != nil {
		return err.Error()
	}
	return string(b)
}
