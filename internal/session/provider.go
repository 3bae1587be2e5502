package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"codecrack/internal/game"
	"codecrack/internal/solver"
)

// AnswerProvider supplies verifier answers during an interactive run: true
// when the card gives the probe the same result it gives the secret.
type AnswerProvider interface {
	Answer(ctx context.Context, q solver.Query) (bool, error)
}

// ErrScriptExhausted marks a scripted run that asked more questions than
// the script holds.
var ErrScriptExhausted = errors.New("answer script exhausted")

// ScriptedProvider replays a fixed answer sequence. Used by tests and by
// replaying recorded transcripts.
type ScriptedProvider struct {
	answers []bool
	pos     int
}

// NewScriptedProvider returns a provider answering from the given
// sequence, in order.
func NewScriptedProvider(answers ...bool) *ScriptedProvider {
	return &ScriptedProvider{answers: answers}
}

// Answer returns the next scripted answer.
func (p *ScriptedProvider) Answer(ctx context.Context, q solver.Query) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if p.pos >= len(p.answers) {
		return false, fmt.Errorf("%w: %d answers consumed, asked about %s",
			ErrScriptExhausted, p.pos, q)
	}
	a := p.answers[p.pos]
	p.pos++
	return a, nil
}

// Asked returns how many answers the run consumed.
func (p *ScriptedProvider) Asked() int { return p.pos }

// PromptProvider asks questions on a writer and reads y/n answers from a
// reader. Anything that is not yes or no gets the question again; only a
// closed input ends the run early.
type PromptProvider struct {
	scanner *bufio.Scanner
	out     io.Writer

	// Render overrides the default plain-text question. The cmd layer
	// installs a styled renderer here.
	Render func(q solver.Query) string
}

// NewPromptProvider wires a provider to an input and output stream,
// usually stdin and stdout.
func NewPromptProvider(in io.Reader, out io.Writer) *PromptProvider {
	return &PromptProvider{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Answer prints the question and blocks for a yes or no.
func (p *PromptProvider) Answer(ctx context.Context, q solver.Query) (bool, error) {
	prompt := p.renderQuery(q)
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if _, err := fmt.Fprint(p.out, prompt); err != nil {
			return false, err
		}
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return false, fmt.Errorf("read answer: %w", err)
			}
			return false, fmt.Errorf("read answer: %w", io.EOF)
		}
		switch strings.ToLower(strings.TrimSpace(p.scanner.Text())) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if _, err := fmt.Fprintln(p.out, `please answer "y" or "n"`); err != nil {
			return false, err
		}
	}
}

func (p *PromptProvider) renderQuery(q solver.Query) string {
	if p.Render != nil {
		return p.Render(q)
	}
	return fmt.Sprintf("ask card %s (%s) about %s. same result as the secret? [y/n] ",
		game.TableLabel(q.RulePos), q.Rule.Name, q.Probe)
}
