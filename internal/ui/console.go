package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nibzard/todo-go/internal/render"
	"github.com/nibzard/todo-go/internal/session"
)

// Console is the line-oriented front-end. It reads one answer per line, so
// it also works with piped input.
type Console struct {
	sess      *session.Session
	out       io.Writer
	presenter render.Presenter
	styles    Styles
}

// NewConsole creates a console writing to out. A nil presenter renders
// tables to out in the console's table styles.
func NewConsole(sess *session.Session, out io.Writer, presenter render.Presenter) *Console {
	styles := DefaultStyles()
	if presenter == nil {
		presenter = render.NewTable(out).WithStyles(styles.Table)
	}
	return &Console{
		sess:      sess,
		out:       out,
		presenter: presenter,
		styles:    styles,
	}
}

// Run shows the menu until the user exits, input ends, or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	lines := newLineReader(in)
	defer lines.close()
	for {
		c.writeMenu()
		choice, err := c.ask(ctx, lines, "Choose an option: ")
		if err != nil {
			return endOfInput(err)
		}

		cmd, ok := session.ParseCommand(choice)
		if !ok {
			c.notify(c.sess.InvalidChoice(choice))
			continue
		}

		switch cmd {
		case session.CmdExit:
			c.notify(c.sess.Goodbye())
			return nil
		case session.CmdAdd:
			err = c.add(ctx, lines)
		case session.CmdComplete:
			err = c.complete(ctx, lines)
		default:
			err = c.show(cmd)
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

func (c *Console) add(ctx context.Context, lines *lineReader) error {
	desc, err := c.ask(ctx, lines, descriptionPrompt)
	if err != nil {
		return err
	}
	due, err := c.ask(ctx, lines, c.sess.DuePrompt()+": ")
	if err != nil {
		return err
	}
	_, notice := c.sess.Add(desc, due)
	c.notify(notice)
	return nil
}

func (c *Console) show(cmd session.Command) error {
	view, ok := c.sess.View(cmd)
	if !ok {
		return nil
	}
	return c.presenter.Present(view.Title, view.Rows(c.sess.Layout()), render.Options{})
}

func (c *Console) complete(ctx context.Context, lines *lineReader) error {
	view, notice, ok := c.sess.CompletionView()
	if err := c.presenter.Present(view.Title, view.Rows(c.sess.Layout()), render.Options{ShowIndex: true}); err != nil {
		return err
	}
	if !ok {
		c.notify(notice)
		return nil
	}
	answer, err := c.ask(ctx, lines, selectPrompt)
	if err != nil {
		return err
	}
	c.notify(c.sess.Complete(view, answer))
	return nil
}

func (c *Console) writeMenu() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.Title.Render(session.MenuTitle))
	for _, item := range session.Menu() {
		fmt.Fprintf(c.out, "%d. %s\n", item.Command, item.Label)
	}
}

func (c *Console) ask(ctx context.Context, lines *lineReader, prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	return lines.next(ctx)
}

func (c *Console) notify(n session.Notice) {
	fmt.Fprintln(c.out, c.styles.Notice(n))
}

// endOfInput treats a closed input stream as a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// lineReader reads lines on its own goroutine so a blocked read does not
// keep ctx cancellation from ending the loop. After close the goroutine
// exits once its pending read returns.
type lineReader struct {
	lines  chan string
	err    chan error
	done   chan struct{}
	exited chan struct{}
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		lines:  make(chan string),
		err:    make(chan error, 1),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go func() {
		defer close(lr.exited)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lr.lines <- scanner.Text():
			case <-lr.done:
				return
			}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		lr.err <- err
	}()
	return lr
}

func (lr *lineReader) close() {
	close(lr.done)
}

func (lr *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line := <-lr.lines:
		return line, nil
	case err := <-lr.err:
		lr.err <- err
		return "", err
	}
}
