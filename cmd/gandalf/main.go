// Command gandalf runs GandalfLang scripts, or an interactive session when
// given no arguments.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/gandalf-lang/gandalf"
)

const (
	banner      = "GandalfLang REPL — Speak, friend, and enter."
	farewell    = "You shall not pass! (session ended)"
	historyFile = ".gandalf_history"
	promptMain  = ">> "
	promptCont  = "… "
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) >= 1 {
		vm := gandalf.NewVM()
		if err := vm.RunFile(args[0]); err != nil {
			if gandalf.IsLanguageError(err) {
				fmt.Printf("Fizzle: %v\n", err)
				return 1
			}
			fmt.Printf("Fizzle (unexpected): %v\n", err)
			return 2
		}
		return 0
	}
	return repl()
}

func repl() int {
	fmt.Println(banner)
	fmt.Println("Type Ctrl+C or Ctrl+D to leave Middle-earth.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		fmt.Println("\n" + farewell)
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	vm := gandalf.NewVM()
	for {
		src, ok := readBlock(ln)
		if !ok {
			fmt.Println("\n" + farewell)
			return 0
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		if err := vm.Run(src); err != nil {
			if gandalf.IsLanguageError(err) {
				fmt.Printf("Fizzle: %v\n", err)
			} else {
				fmt.Printf("Fizzle (unexpected): %v\n", err)
			}
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// readBlock accumulates lines until the buffer no longer looks like an
// unfinished block. The second return is false on end of input.
func readBlock(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !gandalf.NeedsMore(b.String()) {
			return b.String(), true
		}
	}
}
