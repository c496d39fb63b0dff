// Command rpn is an interactive session (and script runner) for the rpn
// scripting language, wired to a simulated CNC machine.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/peterh/liner"

	"github.com/qmill/rpn"
	"github.com/qmill/rpn/machine"
)

const historyName = ".rpn_history"

func main() {
	var (
		trace       = flag.Bool("trace", false, "log word dispatch to stderr")
		interactive = flag.Bool("i", false, "enter the prompt after running script files")
	)
	flag.Parse()

	opts := []rpn.Option{rpn.WithOutput(os.Stdout)}
	if *trace {
		log.SetOutput(os.Stderr)
		opts = append(opts, rpn.WithLogf(log.Printf))
	}
	it := rpn.New(opts...)
	machine.Register(it, machine.NewSimulator())

	for _, path := range flag.Args() {
		if err := it.ParseFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "rpn: %v\n", err)
			os.Exit(1)
		}
	}
	if flag.NArg() > 0 && !*interactive {
		return
	}

	if err := runPrompt(it); err != nil {
		fmt.Fprintf(os.Stderr, "rpn: %v\n", err)
		os.Exit(1)
	}
}

// session is the prompt's own state, reached from the words it registers
// through their call context.
type session struct {
	done bool
}

func runPrompt(it *rpn.Interp) error {
	var sess session
	it.AddDefinition(rpn.WordDefinition{
		Name:        "BYE",
		Description: "Leave the interactive session ( -- )",
		Context:     &sess,
		Eval: func(it *rpn.Interp, c *rpn.Call) error {
			c.Context.(*session).done = true
			return nil
		},
	})

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	for !sess.done {
		input, err := line.Prompt("rpn> ")
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			it.Reset()
			continue
		case errors.Is(err, io.EOF):
			fmt.Println()
			return nil
		case err != nil:
			return err
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if err := it.Parse(input); err != nil {
			fmt.Printf("ERROR: %v\n", it.Status())
		}
	}
	return nil
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyName
	}
	return filepath.Join(home, historyName)
}
