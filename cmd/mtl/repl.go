package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"
	"github.com/peterh/liner"

	"mtl/config"
	"mtl/eval"
	"mtl/parser"
	"mtl/types"
)

const (
	banner     = "mtl: type statements, :vars, :ast <program> or :quit"
	promptCont = "...> "
)

var stderr = termenv.NewOutput(os.Stderr)

func red(s string) string {
	return stderr.String(s).Foreground(termenv.ANSIRed).String()
}

// repl runs the interactive prompt. Variables persist across inputs.
func repl(cfg *config.Config) int {
	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath(cfg.REPL.History)
	if histPath != "" {
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
	}

	session := eval.NewSession(os.Stdout, cfg.Ticks)
	for {
		code, ok := readByParseProbe(ln, cfg.REPL.Prompt, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if strings.HasPrefix(code, ":") {
			if quit := command(session, code); quit {
				return 0
			}
			continue
		}

		val, err := session.Exec(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		if val != nil {
			fmt.Println(display(val))
		}
	}
}

// command handles the colon commands; it reports whether to quit
func command(session *eval.Session, line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	switch strings.ToLower(name) {
	case ":quit", ":q":
		return true
	case ":vars":
		for _, n := range session.Names() {
			v, _ := session.Lookup(n)
			fmt.Printf("%s = %s\n", n, display(v))
		}
	case ":ast":
		prog, err := parser.Parse(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			break
		}
		for _, l := range parser.UnparseProgram(prog) {
			fmt.Println(l)
		}
	default:
		fmt.Println("unknown command. Type :quit to exit.")
	}
	return false
}

// readByParseProbe keeps reading lines while the accumulated input is
// an unfinished program
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) && b.Len() > 0 {
				// Ctrl-C drops the unfinished input
				b.Reset()
				continue
			}
			if err != io.EOF && !errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(os.Stderr, red(err.Error()))
			}
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()

		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, err := parser.Parse(src); err != nil && parser.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}

// display renders a REPL result; strings are shown quoted
func display(v types.Value) string {
	if s, ok := v.(types.StrValue); ok {
		return s.Quote()
	}
	return v.String()
}

func historyPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, name)
}
