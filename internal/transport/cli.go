package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"
)

var (
	errReadTimeout    = errors.New("timed out waiting for prompt")
	errShellClosed    = errors.New("shell closed")
	errEnableRejected = errors.New("enable secret rejected")
)

var (
	// matches a prompt before the hostname is known
	genericPromptRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._\-/:@]*(\([A-Za-z0-9\-]+\))?[>#]\s*$`)
	passwordRe      = regexp.MustCompile(`(?i)password:\s*$`)
	moreRe          = regexp.MustCompile(`\s*--More--\s*`)
)

// cliConn drives an interactive Cisco-style CLI over a byte stream pair
type cliConn struct {
	in     io.Writer
	chunks chan []byte
	done   chan struct{}

	errMu   sync.Mutex
	readErr error

	buf        bytes.Buffer
	prompt     *regexp.Regexp
	hostname   string
	privileged bool

	closeOnce sync.Once
}

func newCLIConn(in io.Writer, out io.Reader) *cliConn {
	c := &cliConn{
		in:     in,
		chunks: make(chan []byte, 64),
		done:   make(chan struct{}),
		prompt: genericPromptRe,
	}
	go c.pump(out)
	return c
}

func (c *cliConn) pump(out io.Reader) {
	defer close(c.chunks)

	b := make([]byte, 4096)
	for {
		n, err := out.Read(b)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, b[:n])
			select {
			case c.chunks <- chunk:
			case <-c.done:
				return
			}
		}
		if err != nil {
			c.errMu.Lock()
			c.readErr = err
			c.errMu.Unlock()
			return
		}
	}
}

func (c *cliConn) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *cliConn) write(line string) error {
	if _, err := io.WriteString(c.in, line+"\n"); err != nil {
		return fmt.Errorf("%w: %v", errShellClosed, err)
	}
	return nil
}

// readUntil accumulates output until match reports true for its last line
func (c *cliConn) readUntil(ctx context.Context, timeout time.Duration, match func(last string) bool) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if match(lastLine(c.buf.String())) {
			out := c.buf.String()
			c.buf.Reset()
			return out, nil
		}

		select {
		case chunk, ok := <-c.chunks:
			if !ok {
				c.errMu.Lock()
				err := c.readErr
				c.errMu.Unlock()
				if err == nil || errors.Is(err, io.EOF) {
					return "", errShellClosed
				}
				return "", fmt.Errorf("%w: %v", errShellClosed, err)
			}
			c.buf.Write(chunk)
		case <-timer.C:
			return "", errReadTimeout
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func (c *cliConn) atPrompt(last string) bool {
	return c.prompt.MatchString(last)
}

// login waits for the first prompt, enters privileged exec when a secret is
// given and disables paging
func (c *cliConn) login(ctx context.Context, timeout time.Duration, enableSecret string) error {
	out, err := c.readUntil(ctx, timeout, c.atPrompt)
	if err != nil {
		return fmt.Errorf("waiting for login prompt: %w", err)
	}
	last := strings.TrimSpace(lastLine(out))
	c.privileged = strings.HasSuffix(last, "#")

	if !c.privileged && enableSecret != "" {
		if last, err = c.enable(ctx, timeout, enableSecret); err != nil {
			return err
		}
	}

	c.learnPrompt(last)

	if _, err := c.run(ctx, timeout, "terminal length 0"); err != nil {
		return fmt.Errorf("disabling paging: %w", err)
	}
	return nil
}

func (c *cliConn) enable(ctx context.Context, timeout time.Duration, secret string) (string, error) {
	if err := c.write("enable"); err != nil {
		return "", err
	}

	out, err := c.readUntil(ctx, timeout, func(last string) bool {
		return passwordRe.MatchString(last) || c.atPrompt(last)
	})
	if err != nil {
		return "", fmt.Errorf("entering enable mode: %w", err)
	}

	if passwordRe.MatchString(lastLine(out)) {
		if err := c.write(secret); err != nil {
			return "", err
		}
		// a wrong secret re-prompts for the password on IOS
		out, err = c.readUntil(ctx, timeout, func(last string) bool {
			return passwordRe.MatchString(last) || c.atPrompt(last)
		})
		if err != nil {
			return "", fmt.Errorf("entering enable mode: %w", err)
		}
	}

	last := strings.TrimSpace(lastLine(out))
	if !strings.HasSuffix(last, "#") {
		return "", errEnableRejected
	}
	c.privileged = true
	return last, nil
}

// learnPrompt pins prompt matching to the device hostname so output lines
// ending in > or # are not mistaken for the prompt
func (c *cliConn) learnPrompt(prompt string) {
	host := strings.TrimRight(prompt, ">#")
	if i := strings.Index(host, "("); i > 0 {
		host = host[:i]
	}
	if host == "" {
		return
	}
	c.hostname = host
	c.prompt = regexp.MustCompile(`^` + regexp.QuoteMeta(host) + `(\([A-Za-z0-9\-]+\))?[>#]\s*$`)
}

// run sends one command and returns its cleaned output
func (c *cliConn) run(ctx context.Context, timeout time.Duration, command string) (string, error) {
	if err := c.write(command); err != nil {
		return "", err
	}

	var raw strings.Builder
	for {
		out, err := c.readUntil(ctx, timeout, func(last string) bool {
			return c.atPrompt(last) || strings.Contains(last, "--More--")
		})
		if err != nil {
			return "", err
		}
		raw.WriteString(out)

		if c.atPrompt(lastLine(out)) {
			break
		}
		// paging was not disabled; ask for the next page
		if _, err := io.WriteString(c.in, " "); err != nil {
			return "", fmt.Errorf("%w: %v", errShellClosed, err)
		}
	}

	return cleanOutput(raw.String(), command), nil
}

// cleanOutput strips the echoed command, the trailing prompt and pager
// artifacts
func cleanOutput(raw, command string) string {
	raw = strings.ReplaceAll(raw, "\r", "")
	raw = strings.ReplaceAll(raw, "\b", "")
	raw = moreRe.ReplaceAllString(raw, "\n")

	lines := strings.Split(raw, "\n")
	if len(lines) > 0 && strings.Contains(lines[0], strings.TrimSpace(command)) {
		lines = lines[1:]
	}
	if len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}

	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

func lastLine(s string) string {
	s = strings.TrimRight(s, "\r")
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimLeft(s, "\r")
}
