// Package handlers runs player sessions: the main menu, character
// management, and the interactive side of dungeon exploration.
package handlers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cory-johannsen/delve/internal/frontend/telnet"
)

// Terminal is the line-oriented player I/O a session runs over.
// Writes may come from other goroutines (stamina notifications).
type Terminal interface {
	ReadLine(ctx context.Context) (string, error)
	WriteLine(text string) error
	WritePrompt(text string) error
}

var _ Terminal = (*telnet.Conn)(nil)

// Console adapts a reader and a writer, normally stdin and stdout, to Terminal.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
	wmu sync.Mutex

	once  sync.Once
	lines chan string
	err   error
}

// NewConsole creates a Console. Input is consumed lazily on the first ReadLine.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    bufio.NewScanner(in),
		out:   out,
		lines: make(chan string),
	}
}

func (c *Console) scan() {
	for c.in.Scan() {
		c.lines <- c.in.Text()
	}
	c.err = c.in.Err()
	if c.err == nil {
		c.err = io.EOF
	}
	close(c.lines)
}

// ReadLine returns the next input line, trimmed. Cancelling ctx abandons the
// wait; the pending line is delivered to the next call.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	c.once.Do(func() { go c.scan() })
	select {
	case line, ok := <-c.lines:
		if !ok {
			return "", c.err
		}
		return strings.TrimSpace(line), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// WriteLine writes text and a newline.
func (c *Console) WriteLine(text string) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_, err := fmt.Fprintln(c.out, text)
	return err
}

// WritePrompt writes text with no newline.
func (c *Console) WritePrompt(text string) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_, err := io.WriteString(c.out, text)
	return err
}

// ask writes prompt and reads the reply.
func ask(ctx context.Context, t Terminal, prompt string) (string, error) {
	if err := t.WritePrompt(prompt); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}
	line, err := t.ReadLine(ctx)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return line, nil
}

// confirm asks a yes/no question until it gets an answer.
func confirm(ctx context.Context, t Terminal, r Renderer, prompt string) (bool, error) {
	for {
		line, err := ask(ctx, t, r.Prompt(prompt+" (y/n): "))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		_ = t.WriteLine(r.Warn("Please answer y or n."))
	}
}
