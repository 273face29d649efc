// Package console reads text commands from a line stream, runs each one on
// the frame loop goroutine, and writes the response back.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Prompt is written before each input line.
const Prompt = "> "

// Dispatcher turns one input line into a text response.
type Dispatcher interface {
	Dispatch(line string) (string, error)
}

// Runner executes fn on the goroutine that owns the game state and waits for it.
type Runner interface {
	Do(ctx context.Context, fn func()) error
}

// Console is a line-oriented input session.
type Console struct {
	in       io.Reader
	out      io.Writer
	dispatch Dispatcher
	runner   Runner
	color    bool
	logger   *zap.Logger

	quit chan struct{}
	once sync.Once
	wmu  sync.Mutex
}

// Options configures a Console.
type Options struct {
	// Color enables ANSI styling of responses.
	Color bool
}

// New returns a Console reading from in and writing to out.
//
// Precondition: in, out, dispatch, runner, and logger must be non-nil.
func New(in io.Reader, out io.Writer, dispatch Dispatcher, runner Runner, opts Options, logger *zap.Logger) *Console {
	return &Console{
		in:       in,
		out:      out,
		dispatch: dispatch,
		runner:   runner,
		color:    opts.Color,
		logger:   logger,
		quit:     make(chan struct{}),
	}
}

// Start reads lines until EOF, a "quit" line, or Stop. Each line is
// dispatched on the runner's goroutine.
//
// Postcondition: returns nil on EOF, quit, or Stop; a read error otherwise.
func (c *Console) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-c.quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	c.write(Prompt)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("console: reading input: %w", err)
			}
			c.logger.Info("console input closed")
			return nil
		case line := <-lines:
			trimmed := strings.TrimSpace(line)
			if strings.EqualFold(trimmed, "quit") || strings.EqualFold(trimmed, "exit") {
				c.logger.Info("console quit requested")
				return nil
			}
			if err := c.handle(ctx, trimmed); err != nil {
				return nil
			}
			c.write(Prompt)
		}
	}
}

// handle runs one line; a non-nil return means ctx ended before it ran.
func (c *Console) handle(ctx context.Context, line string) error {
	if line == "" {
		return nil
	}
	var (
		resp string
		err  error
	)
	if doErr := c.runner.Do(ctx, func() { resp, err = c.dispatch.Dispatch(line) }); doErr != nil {
		return doErr
	}
	if err != nil {
		c.logger.Debug("command rejected", zap.String("line", line), zap.Error(err))
		c.writeLine(c.style(Red, err.Error()))
		return nil
	}
	if resp != "" {
		c.writeLine(c.style(Green, resp))
	}
	return nil
}

// Announce writes an unsolicited message, such as a weapon switch notice.
// Safe from any goroutine.
func (c *Console) Announce(text string) {
	c.writeLine(c.style(Cyan, text))
}

// Stop makes a running Start return. Safe to call more than once.
func (c *Console) Stop() {
	c.once.Do(func() { close(c.quit) })
}

func (c *Console) style(color, text string) string {
	if !c.color {
		return text
	}
	return Colorize(color, text)
}

func (c *Console) writeLine(s string) { c.write(s + "\n") }

func (c *Console) write(s string) {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if _, err := io.WriteString(c.out, s); err != nil {
		c.logger.Debug("console write failed", zap.Error(err))
	}
}
