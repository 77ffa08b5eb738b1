// Command uhttpd serves a file image over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/indigo-web/uhttpd"
	"github.com/indigo-web/uhttpd/cgi"
	"github.com/indigo-web/uhttpd/config"
	"github.com/indigo-web/uhttpd/romfs"
)

var version = "0.9.0"

type options struct {
	addr         string
	image        string
	dir          string
	configPath   string
	raw          bool
	stats        bool
	mss          int
	pollInterval time.Duration
	verbose      int
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "uhttpd: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	var opts options
	fs := flag.NewFlagSet("uhttpd", flag.ContinueOnError)

	fs.StringVarP(&opts.addr, "addr", "a", uhttpd.DefaultAddr, "Address to listen on")
	fs.StringVarP(&opts.image, "image", "i", "", "Serve files of a txtar archive")
	fs.StringVarP(&opts.dir, "dir", "d", "", "Serve files of a directory")
	fs.StringVarP(&opts.configPath, "config", "c", "", "JSON config file")
	fs.BoolVar(&opts.raw, "raw", false, "Serve files verbatim, without generated response headers")
	fs.BoolVar(&opts.stats, "stats", false, "Print file statistics as JSON on exit")
	fs.IntVar(&opts.mss, "mss", 0, "Maximum segment size (overrides config)")
	fs.DurationVar(&opts.pollInterval, "poll-interval", 0, "Idle poll interval (overrides config)")
	fs.CountVarP(&opts.verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var showVersion bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}

		return err
	}

	if showVersion {
		fmt.Printf("uhttpd %s\n", version)
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	rom, err := loadImage(opts, cfg)
	if err != nil {
		return err
	}

	log := newLogger(opts.verbose)
	table := cgi.NewTable().MustRegister('a', cgi.Once(func() {
		log.Info("script function called")
	}))

	app := uhttpd.New(opts.addr).
		Tune(cfg).
		Files(rom).
		CGI(table).
		Logger(log)

	go func() {
		<-ctx.Done()
		app.Stop()
	}()

	err = app.Serve()

	if opts.stats {
		stats, merr := rom.MarshalStats()
		if merr != nil {
			return merr
		}

		fmt.Println(string(stats))
	}

	return err
}

func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()

	if len(opts.configPath) > 0 {
		var err error
		if cfg, err = config.LoadFile(opts.configPath); err != nil {
			return nil, err
		}
	}

	if opts.mss > 0 {
		cfg.NET.MSS = opts.mss
	}

	if opts.pollInterval > 0 {
		cfg.NET.PollInterval = opts.pollInterval
	}

	return cfg, nil
}

func loadImage(opts options, cfg *config.Config) (*romfs.ROM, error) {
	var headers *romfs.Headers
	if !opts.raw {
		headers = &romfs.Headers{
			Server:       "uhttpd/" + version,
			NotFound:     cfg.HTTPD.NotFoundFile,
			ScriptPrefix: cfg.HTTPD.ScriptPrefix,
		}
	}

	switch {
	case len(opts.image) > 0 && len(opts.dir) > 0:
		return nil, errors.New("--image and --dir are mutually exclusive")
	case len(opts.image) > 0:
		return romfs.LoadTxtar(opts.image, headers)
	case len(opts.dir) > 0:
		return romfs.FromFS(os.DirFS(opts.dir), headers)
	default:
		return nil, errors.New("either --image or --dir must be set")
	}
}

func newLogger(verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
