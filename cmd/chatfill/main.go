package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ezraisw/scenecall"
	"github.com/ezraisw/scenecall/adapter/memory"
	"github.com/ezraisw/scenecall/chat"
	"github.com/ezraisw/scenecall/logger"
	"github.com/ezraisw/scenecall/logger/std"
	scenelog "github.com/ezraisw/scenecall/logger/zerolog"
	"github.com/rs/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "chatfill: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("chatfill", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a TOML config file")
	count := fs.Int("count", -1, "number of lines to send (overrides config)")
	format := fs.String("format", "json", "transcript format: json|msgpack|cbor|yaml")
	logKind := fs.String("log", "zerolog", "logger: std|zerolog")
	verbose := fs.Bool("verbose", false, "log every call")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *count >= 0 {
		cfg.Batch.Count = *count
	}

	log, err := newLogger(*logKind, stderr, *verbose)
	if err != nil {
		return err
	}

	out, err := newTranscript(stdout, *format)
	if err != nil {
		return err
	}

	// Stand-in for the wallet UI: a chat view that decodes what it receives.
	view := chat.NewView()
	scene := memory.NewAdapter()
	scene.AddNode(cfg.Path, map[string]memory.Method{
		cfg.Method: view.InsertLine,
	})

	client := scenecall.NewClient(scene, log)
	if err := client.Hello(ctx); err != nil {
		return err
	}

	node := client.On(cfg.Path).SetContext(ctx).SetMaxArgs(cfg.MaxArgs)
	sender := chat.NewSender(node, cfg.Method, log)

	var writeErr error
	sent, err := sender.SendBatch(ctx, cfg.Batch, func(i int, l chat.Line) {
		if writeErr == nil {
			writeErr = out.write(newRecord(i, cfg, l))
		}
	})
	if err != nil {
		log.Error(err)
		return err
	}
	if writeErr != nil {
		return fmt.Errorf("write transcript: %w", writeErr)
	}

	if view.Len() != sent {
		return fmt.Errorf("chat view holds %d lines, sent %d", view.Len(), sent)
	}
	log.Info("chat view filled", cfg.Path, sent)
	return nil
}

func newLogger(kind string, w io.Writer, verbose bool) (logger.Logger, error) {
	switch kind {
	case "std":
		return std.NewLoggerWithWriters(w, w, verbose), nil
	case "zerolog":
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		return scenelog.NewLoggerWithWriter(zerolog.ConsoleWriter{Out: w, NoColor: true}, "chatfill", level), nil
	default:
		return nil, fmt.Errorf("unknown logger %q", kind)
	}
}
