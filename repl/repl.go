// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"localopts/internal/errors"
	"localopts/internal/ir"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
)

// Start reads IR from in one chunk at a time and writes each function back
// to out after running passes over it. A chunk ends with a line holding
// only "}", or with a blank line when it contains no function body.
// Declarations stay in scope for later chunks.
func Start(in io.Reader, out io.Writer, passes []string) {
	s := &session{out: out, passes: passes, declared: make(map[string]bool)}
	scanner := bufio.NewScanner(in)

	var chunk strings.Builder
	for {
		if chunk.Len() == 0 {
			fmt.Fprint(out, PROMPT)
		} else {
			fmt.Fprint(out, CONTINUATION)
		}
		if !scanner.Scan() {
			if chunk.Len() > 0 {
				s.eval(chunk.String())
			}
			return
		}

		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" && chunk.Len() == 0 {
			continue
		}

		chunk.WriteString(line)
		chunk.WriteString("\n")

		if trimmed == "}" || (trimmed == "" && !strings.Contains(chunk.String(), "{")) {
			s.eval(chunk.String())
			chunk.Reset()
		}
	}
}

type session struct {
	out      io.Writer
	passes   []string
	prelude  strings.Builder
	declared map[string]bool
}

func (s *session) eval(chunk string) {
	source := s.prelude.String() + chunk
	m, diags := ir.ParseModule("<repl>", source)
	if len(diags) > 0 {
		reporter := errors.NewErrorReporter("<repl>", source)
		fmt.Fprint(s.out, reporter.FormatErrors(diags))
	}
	if errors.HasErrors(diags) {
		return
	}

	pipeline, err := ir.NewPipeline(ir.NewRegistry(s.out), s.passes...)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	pipeline.Run(m)

	for _, fn := range m.Functions() {
		if s.declared[fn.Name] {
			continue
		}
		if fn.IsDeclaration() {
			s.declared[fn.Name] = true
			s.prelude.WriteString(fn.String())
			fmt.Fprintf(s.out, "declared @%s\n", fn.Name)
			continue
		}
		fmt.Fprint(s.out, fn.String())
	}
}
