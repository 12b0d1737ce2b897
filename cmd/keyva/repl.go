package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"keyva/internal/config"
	"keyva/internal/diag"
	"keyva/internal/interp"
	"keyva/internal/lexer"
	"keyva/internal/source"
	"keyva/internal/token"
	"keyva/internal/version"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive keyva session",
	Long:  `The REPL reads statements line by line, tracking block nesting, and keeps variables and functions across inputs`,
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

func runRepl(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), bannerStyle.Render("keyva "+version.Version))
		fmt.Fprintln(cmd.OutOrStdout(), hintStyle.Render("type exit or quit to leave, Ctrl+D also works"))
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath(cfg)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := newReplSession(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	for {
		prompt := cfg.REPL.Prompt
		if session.depth > 0 {
			prompt = cfg.REPL.Continuation
		}

		line, err := ln.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			// Ctrl+C drops the pending block, not the session.
			session.reset()
			continue
		}
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}

		trimmed := strings.TrimSpace(line)
		if session.depth == 0 && (trimmed == "exit" || trimmed == "quit") {
			return nil
		}
		if trimmed != "" {
			ln.AppendHistory(line)
		}

		session.feed(line)
	}
}

func historyPath(cfg config.Config) string {
	if cfg.REPL.History != "" {
		return cfg.REPL.History
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".keyva_history"
	}
	return filepath.Join(home, ".keyva_history")
}

// replSession accumulates lines until every opened block is closed, then
// executes the whole buffer against the persistent interpreter.
type replSession struct {
	cfg   config.Config
	fs    *source.FileSet
	in    *interp.Interp
	errw  io.Writer
	buf   []string
	depth int
}

func newReplSession(cfg config.Config, out, errw io.Writer) *replSession {
	return &replSession{
		cfg:  cfg,
		fs:   source.NewFileSet(),
		errw: errw,
		in: interp.New(interp.Options{
			Out:          out,
			Err:          errw,
			MaxCallDepth: cfg.Limits.MaxCallDepth,
			MaxVariables: cfg.Limits.MaxVariables,
			MaxFunctions: cfg.Limits.MaxFunctions,
		}),
	}
}

func (s *replSession) reset() {
	s.buf = s.buf[:0]
	s.depth = 0
}

// feed adds one line, updates nesting, and executes when the block closes.
// Openers are if, for and def; while does not nest here, matching the
// line-mode contract.
func (s *replSession) feed(line string) {
	delta, underflow := nestingDelta(line, s.depth)
	if underflow {
		fmt.Fprintln(s.errw, "Error: Unmatched 'end' detected")
		s.reset()
		return
	}
	s.buf = append(s.buf, line)
	s.depth += delta
	if s.depth > 0 {
		return
	}
	s.execute()
}

func (s *replSession) execute() {
	src := strings.Join(s.buf, "\n") + "\n"
	s.reset()
	if strings.TrimSpace(src) == "" {
		return
	}

	id := s.fs.AddVirtual("<repl>", []byte(src))
	bag := diag.NewBag(s.cfg.Limits.MaxDiagnostics)
	s.in.Run(s.fs.Get(id), diag.BagReporter{Bag: bag})
	for _, d := range bag.Items() {
		fmt.Fprintf(s.errw, "Error: %s\n", d.Message)
	}
}

// nestingDelta tokenizes one line and sums block openers and closers.
// underflow reports an end that closes more than is open.
func nestingDelta(line string, depth int) (delta int, underflow bool) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<repl-line>", []byte(line))
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.NopReporter{}})
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return delta, false
		}
		switch tok.Kind {
		case token.KwIf, token.KwFor, token.KwDef:
			delta++
		case token.KwEnd:
			delta--
			if depth+delta < 0 {
				return 0, true
			}
		}
	}
}
