package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"switchtrace/internal/adapter"
	"switchtrace/internal/config"
	"switchtrace/internal/lab"
	"switchtrace/internal/logging"
	"switchtrace/internal/service"
	"switchtrace/internal/sink"
	"switchtrace/internal/transport"
	"switchtrace/internal/walker"
)

// errIncomplete signals that some lookups did not locate their address;
// the details were already printed
var errIncomplete = errors.New("not every address was located")

// options are the persistent command line flags
type options struct {
	configPath string
	labPath    string
	entry      string
	logLevel   string
	logFormat  string
}

// app holds what every subcommand needs
type app struct {
	cfg        *config.Config
	configPath string
	log        zerolog.Logger
	logCloser  io.Closer
}

// loadApp reads configuration and applies flag overrides
func loadApp(opts *options, stderr io.Writer) (*app, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if opts.configPath != "" {
		cfg, path, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.labPath != "" {
		cfg.LabPath = opts.labPath
	}
	if opts.entry != "" {
		cfg.EntryDevice = opts.entry
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
		cfg.Logging.Debug = false
	}
	if opts.logFormat != "" {
		cfg.Logging.Format = opts.logFormat
	}

	var (
		log       zerolog.Logger
		logCloser io.Closer = io.NopCloser(nil)
	)
	if cfg.Logging.Output == "" || cfg.Logging.Output == "stderr" {
		log, err = logging.NewWithWriter(cfg.Logging, stderr)
	} else {
		log, logCloser, err = logging.New(cfg.Logging)
	}
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	if path != "" {
		log.Debug().Str("path", path).Msg("loaded config")
	}

	return &app{cfg: cfg, configPath: path, log: log, logCloser: logCloser}, nil
}

// Close releases the log file, if any
func (a *app) Close() error {
	return a.logCloser.Close()
}

// opener returns the lab topology when one is configured, SSH otherwise
func (a *app) opener() (transport.Opener, error) {
	if a.cfg.LabPath != "" {
		topo, err := lab.Load(a.cfg.LabPath)
		if err != nil {
			return nil, err
		}
		a.log.Info().Str("lab", a.cfg.LabPath).Str("description", topo.Description()).Msg("using simulated topology")
		return topo, nil
	}

	opts := transport.SSHOptions{
		Port:           a.cfg.SSH.Port,
		ConnectTimeout: a.cfg.SSH.ConnectTimeout.Duration(),
		CommandTimeout: a.cfg.SSH.CommandTimeout.Duration(),
		KnownHostsPath: a.cfg.SSH.KnownHostsPath,
	}
	if a.cfg.SSH.Preflight {
		path, version, err := transport.NmapAvailable(context.Background(), "")
		if err != nil {
			a.log.Warn().Err(err).Msg("preflight disabled")
		} else {
			a.log.Debug().Str("nmap_path", path).Str("nmap_version", version).Msg("preflight enabled")
			opts.Preflight = transport.NewNmapPreflight(logging.WithComponent(a.log, "preflight"),
				transport.WithNmapBinary(path),
				transport.WithPreflightTimeout(a.cfg.SSH.ConnectTimeout.Duration()))
		}
	}

	return transport.NewSSHOpener(a.cfg.DomainCredentials(), opts, logging.WithComponent(a.log, "ssh")), nil
}

// locator wires transport, adapter, walker and sinks. The returned close
// function releases the sinks.
func (a *app) locator() (*service.LocatorService, func(), error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	opener, err := a.opener()
	if err != nil {
		return nil, nil, err
	}

	var (
		sinks   sink.Multi
		closers []func()
	)
	if a.cfg.Output.CSVPath != "" {
		sinks = append(sinks, sink.NewCSVSink(a.cfg.Output.CSVPath))
	}
	if a.cfg.Output.DatabasePath != "" {
		store, err := sink.NewSQLiteStore(a.cfg.Output.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, store)
		closers = append(closers, func() { store.Close() })
	}

	querier := adapter.New(opener, logging.WithComponent(a.log, "adapter"))
	w := walker.New(querier)
	svc := service.NewLocatorService(w, sinks, a.cfg.Entry(), logging.WithComponent(a.log, "locator"))

	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	return svc, closeAll, nil
}
