package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"switchtrace/internal/domain"
)

const promptText = "IP to locate (empty line quits): "

// lineReader is the part of readline the prompt loop uses
type lineReader interface {
	Readline() (string, error)
}

// locator is the part of the locator service the prompt loop uses
type locator interface {
	Locate(ctx context.Context, rawIP string) (domain.Outcome, error)
	Entry() domain.DeviceAddress
}

func runInteractive(cmd *cobra.Command, a *app) error {
	svc, closeSinks, err := a.locator()
	if err != nil {
		return err
	}
	defer closeSinks()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Locating from %s. Enter one IP per line.\n", svc.Entry())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptText,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          out,
	})
	if err != nil {
		// not a terminal; read plain lines
		a.log.Debug().Err(err).Msg("readline unavailable, using plain input")
		return promptLoop(cmd.Context(), &scannerReader{s: bufio.NewScanner(cmd.InOrStdin())}, svc, out)
	}
	defer rl.Close()

	return promptLoop(cmd.Context(), rl, svc, out)
}

// promptLoop locates each entered address until an empty line or EOF
func promptLoop(ctx context.Context, in lineReader, svc locator, out io.Writer) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := in.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if strings.TrimSpace(line) == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			return nil
		}

		outcome, lerr := svc.Locate(ctx, input)
		printReport(out, svc.Entry(), input, outcome, lerr)
	}
}

// scannerReader adapts a bufio.Scanner to lineReader
type scannerReader struct {
	s *bufio.Scanner
}

func (r *scannerReader) Readline() (string, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.s.Text(), nil
}
