package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/ssh"

	"switchtrace/internal/domain"
)

// SSHOptions holds SSH transport settings
type SSHOptions struct {
	Port           int
	ConnectTimeout time.Duration
	CommandTimeout time.Duration
	// KnownHostsPath enables host key verification when set
	KnownHostsPath string
	// Preflight, when set, is consulted before every dial
	Preflight Preflighter
}

// DefaultSSHOptions returns sensible defaults
func DefaultSSHOptions() SSHOptions {
	return SSHOptions{
		Port:           22,
		ConnectTimeout: 10 * time.Second,
		CommandTimeout: 30 * time.Second,
	}
}

// SSHOpener opens interactive CLI sessions over SSH
type SSHOpener struct {
	creds domain.Credentials
	opts  SSHOptions
	log   zerolog.Logger
}

// NewSSHOpener creates an opener that logs in with creds
func NewSSHOpener(creds domain.Credentials, opts SSHOptions, log zerolog.Logger) *SSHOpener {
	defaults := DefaultSSHOptions()
	if opts.Port == 0 {
		opts.Port = defaults.Port
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = defaults.ConnectTimeout
	}
	if opts.CommandTimeout == 0 {
		opts.CommandTimeout = defaults.CommandTimeout
	}

	return &SSHOpener{creds: creds, opts: opts, log: log}
}

// Open logs into device and returns a privileged session with paging off
func (o *SSHOpener) Open(ctx context.Context, device domain.DeviceAddress) (Session, error) {
	host := device.String()
	log := o.log.With().Str("device", host).Logger()

	if o.opts.Preflight != nil {
		if err := o.opts.Preflight.Check(ctx, host, o.opts.Port); err != nil {
			return nil, domain.NewTransportError(device, domain.ErrUnreachable, err)
		}
	}

	config, err := o.buildSSHConfig()
	if err != nil {
		return nil, domain.NewTransportError(device, domain.ErrAuth, err)
	}

	log.Debug().Msg("connecting")
	client, err := o.connect(ctx, host, config)
	if err != nil {
		return nil, domain.NewTransportError(device, classifyConnectError(ctx, err), err)
	}

	sess, err := o.startShell(ctx, device, client)
	if err != nil {
		client.Close()
		return nil, err
	}

	log.Debug().Bool("privileged", sess.cli.privileged).Msg("session ready")
	return sess, nil
}

// connect dials with context support and performs the SSH handshake
func (o *SSHOpener) connect(ctx context.Context, host string, config *ssh.ClientConfig) (*ssh.Client, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(o.opts.Port))

	dialer := &net.Dialer{
		Timeout: o.opts.ConnectTimeout,
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial: %w", err)
	}

	// the handshake itself is bounded by the connect timeout too
	if err := conn.SetDeadline(time.Now().Add(o.opts.ConnectTimeout)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to establish SSH connection: %w", err)
	}

	if err := conn.SetDeadline(time.Time{}); err != nil {
		sshConn.Close()
		return nil, fmt.Errorf("failed to clear deadline: %w", err)
	}

	return ssh.NewClient(sshConn, chans, reqs), nil
}

// startShell requests a pty and shell and runs the IOS login dialog
func (o *SSHOpener) startShell(ctx context.Context, device domain.DeviceAddress, client *ssh.Client) (*sshSession, error) {
	session, err := client.NewSession()
	if err != nil {
		return nil, domain.NewTransportError(device, domain.ErrSession, fmt.Errorf("failed to create session: %w", err))
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          1,
		ssh.TTY_OP_ISPEED: 38400,
		ssh.TTY_OP_OSPEED: 38400,
	}
	if err := session.RequestPty("vt100", 0, 511, modes); err != nil {
		session.Close()
		return nil, domain.NewTransportError(device, domain.ErrSession, fmt.Errorf("failed to request pty: %w", err))
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		return nil, domain.NewTransportError(device, domain.ErrSession, err)
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		return nil, domain.NewTransportError(device, domain.ErrSession, err)
	}
	session.Stderr = io.Discard

	if err := session.Shell(); err != nil {
		session.Close()
		return nil, domain.NewTransportError(device, domain.ErrSession, fmt.Errorf("failed to start shell: %w", err))
	}

	cli := newCLIConn(stdin, stdout)
	if err := cli.login(ctx, o.opts.CommandTimeout, o.creds.EnableSecret); err != nil {
		cli.close()
		session.Close()
		return nil, domain.NewTransportError(device, classifyCLIError(err), err)
	}

	if !cli.privileged {
		o.log.Warn().Str("device", device.String()).
			Msg("session is not privileged; set an enable secret if show commands are refused")
	}

	return &sshSession{
		device:  device,
		client:  client,
		session: session,
		cli:     cli,
		timeout: o.opts.CommandTimeout,
	}, nil
}

// sshSession is a Session over an interactive SSH shell
type sshSession struct {
	device  domain.DeviceAddress
	client  *ssh.Client
	session *ssh.Session
	cli     *cliConn
	timeout time.Duration

	closeOnce sync.Once
}

// SendCommand runs one command and waits for the prompt to come back
func (s *sshSession) SendCommand(ctx context.Context, text string) (string, error) {
	output, err := s.cli.run(ctx, s.timeout, text)
	if err != nil {
		return "", domain.NewTransportError(s.device, classifyCLIError(err), fmt.Errorf("%q: %w", text, err))
	}
	return output, nil
}

// Close ends the shell and the connection
func (s *sshSession) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cli.close()
		s.session.Close()
		err = s.client.Close()
		if errors.Is(err, net.ErrClosed) {
			err = nil
		}
	})
	return err
}
