package infcounter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// ErrInputClosed is returned by Controller.Run when its input ends before the
// registry is exhausted.
var ErrInputClosed = errors.New("operator input closed")

const (
	msgWelcome = "Hello and welcome to the infinite counter handler, please indicate " +
		"the amount (up to %d) of infinite counters you would like to have running: \n"
	msgBadQuantity = "You have input a wrong option please try again.\n"
	msgAskPIDs     = "Please insert the PID of the programs you wish to handle separated by spaces: \n"
	msgBadPID      = "%q is not a valid PID, please insert it again.\n"
	msgAnnounced   = "Counters currently announced in %s: %s\n"
	msgSelect      = "Select the instance of the infinite counter you wish to interact with: \n"
	msgBadIndex    = "There is no counter %s, please pick one between 1 and %d.\n"
	msgGoodbye     = "No more Infinite counter programs found, exiting the program, Good bye.\n"
)

// Controller drives the operator dialogue: it collects up to MaxCounters
// pids, then repeatedly lets the operator pick one and an action to apply.
// Actions are dispatched without waiting for them; terminating a counter
// also drops it from the registry, and Run returns once none are left.
type Controller struct {
	in  *bufio.Scanner
	out io.Writer

	state controllerState

	registry    *Registry
	dispatcher  *Dispatcher
	announceDir string
	l           log15.Logger
}

// NewController constructs a Controller reading operator input from in and
// writing prompts to out.
func NewController(in io.Reader, out io.Writer, opts ...Option) *Controller {
	return newController(realOS{}, in, out, opts...)
}

func newController(os osIface, in io.Reader, out io.Writer, opts ...Option) *Controller {
	s := newSettings(opts)
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	return &Controller{
		in:          scanner,
		out:         out,
		state:       controllerStateReadingQuantity,
		dispatcher:  newDispatcher(os, s.l),
		announceDir: s.announceDir,
		l:           s.l,
	}
}

// Run executes one controller session. It returns nil once every managed
// counter has been terminated, and an error if input ends early or the
// registry can't be maintained.
func (c *Controller) Run(ctx context.Context) error {
	qty, err := c.readQuantity(ctx)
	if err != nil {
		return err
	}
	c.mustTransitionTo(controllerStateReadingPIDs)

	pids, err := c.readPIDs(ctx, qty)
	if err != nil {
		return err
	}
	c.registry, err = NewRegistry(pids)
	if err != nil {
		return errors.Wrap(err, "could not build registry")
	}
	c.l.Info("registry ready", "pids", fmt.Sprint(pids))

	if c.registry.Len() > 0 {
		c.mustTransitionTo(controllerStateInteracting)
	}
	for c.registry.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.interact(); err != nil {
			return err
		}
	}

	c.mustTransitionTo(controllerStateExhausted)
	c.printf(msgGoodbye)
	return nil
}

// Close waits for dispatched actions that haven't reached the kernel yet. It
// must only be called once the Controller is no longer used.
func (c *Controller) Close() {
	c.dispatcher.Wait()
}

func (c *Controller) readQuantity(ctx context.Context) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		c.printf(msgWelcome, MaxCounters)
		tok, err := c.next()
		if err != nil {
			return 0, err
		}
		qty, err := strconv.Atoi(tok)
		if err != nil || qty < 0 || qty > MaxCounters {
			c.l.Debug("rejected quantity", "input", tok)
			c.printf(msgBadQuantity)
			continue
		}
		return qty, nil
	}
}

func (c *Controller) readPIDs(ctx context.Context, qty int) ([]PID, error) {
	if qty == 0 {
		return nil, nil
	}
	c.printAnnounced()
	c.printf(msgAskPIDs)
	pids := make([]PID, 0, qty)
	for len(pids) < qty {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tok, err := c.next()
		if err != nil {
			return nil, err
		}
		pid, err := ParsePID(tok)
		if err != nil {
			c.l.Debug("rejected pid", "input", tok, "err", err)
			c.printf(msgBadPID, tok)
			continue
		}
		pids = append(pids, pid)
	}
	return pids, nil
}

func (c *Controller) printAnnounced() {
	if c.announceDir == "" {
		return
	}
	live, err := Discover(c.l, c.announceDir)
	if err != nil {
		c.l.Warn("could not discover announced counters", "dir", c.announceDir, "err", err)
		return
	}
	if len(live) == 0 {
		return
	}
	names := make([]string, 0, len(live))
	for _, pid := range live {
		names = append(names, pid.String())
	}
	c.printf(msgAnnounced, c.announceDir, strings.Join(names, " "))
}

// interact runs one pass of the menu: list, pick a counter, pick an action,
// dispatch it.
func (c *Controller) interact() error {
	c.printf(msgSelect)
	if _, err := c.registry.WriteTo(c.out); err != nil {
		return errors.Wrap(err, "could not display registry")
	}

	tok, err := c.next()
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(tok)
	if err != nil {
		c.printf(msgBadIndex, tok, c.registry.Len())
		return nil
	}
	pid, err := c.registry.At(index)
	if err != nil {
		c.printf(msgBadIndex, tok, c.registry.Len())
		return nil
	}

	c.printf(actionMenu)
	tok, err = c.next()
	if err != nil {
		return err
	}
	code, err := strconv.Atoi(tok)
	if err != nil {
		c.l.Debug("ignoring action", "input", tok)
		return nil
	}
	action, ok := ParseAction(code)
	if !ok {
		c.l.Debug("ignoring action", "code", code)
		return nil
	}

	c.dispatcher.Dispatch(pid, action)
	if action != ActionTerminate {
		return nil
	}
	if _, err := c.registry.Remove(index); err != nil {
		return errors.Wrapf(err, "could not remove terminated pid %v from registry", pid)
	}
	c.l.Info("counter removed from registry", "pid", pid, "remaining", c.registry.Len())
	return nil
}

// next returns the next whitespace separated token of operator input.
func (c *Controller) next() (string, error) {
	if c.in.Scan() {
		return c.in.Text(), nil
	}
	if err := c.in.Err(); err != nil {
		return "", errors.Wrap(err, "could not read operator input")
	}
	return "", ErrInputClosed
}

// printf writes to the operator. Write errors are ignored; a dead terminal
// shows up on the next read.
func (c *Controller) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Controller) mustTransitionTo(state controllerState) {
	if err := c.state.transitionTo(state); err != nil {
		panic(fmt.Sprintf("BUG: error transitioning to %q: %v", state, err))
	}
}
