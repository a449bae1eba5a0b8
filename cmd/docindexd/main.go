// Command docindexd is the document index server: it owns a document
// store and response cache and serves requests over a local FIFO
// transport (spec.md §4.1, §6).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/nmattia/docindex/internal/cache"
	"github.com/nmattia/docindex/internal/config"
	"github.com/nmattia/docindex/internal/dispatcher"
	"github.com/nmattia/docindex/internal/docstore"
	"github.com/nmattia/docindex/internal/logx"
	"github.com/nmattia/docindex/internal/transport"
	"github.com/nmattia/docindex/pkg/fs"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := logx.New(os.Stderr)

	flags := flag.NewFlagSet("docindexd", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to an explicit config file")
	listenDir := flags.String("listen-dir", "", "override the FIFO listen directory")

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}

		log.Errorf("%v", err)
		return 2
	}

	positional := flags.Args()
	if len(positional) != 2 {
		log.Errorf("usage: docindexd [--config path] [--listen-dir dir] <document_folder> <cache_size>")
		return 2
	}

	docRoot := positional[0]

	cacheSize, err := strconv.Atoi(positional[1])
	if err != nil {
		log.Errorf("cache_size must be an integer: %v", err)
		return 2
	}

	workDir, err := os.Getwd()
	if err != nil {
		log.Errorf("determining working directory: %v", err)
		return 1
	}

	overrides := config.Config{DocRoot: docRoot, CacheCapacity: cacheSize, ListenDir: *listenDir}

	cfg, err := config.Load(workDir, *configPath, overrides)
	if err != nil {
		log.Errorf("loading config: %v", err)
		return 1
	}

	// The positional cache_size always wins over the file, including 0,
	// which merge would otherwise treat as "unset".
	cfg.CacheCapacity = cacheSize

	if err := os.MkdirAll(cfg.ListenDir, 0o700); err != nil {
		log.Errorf("creating listen directory: %v", err)
		return 1
	}

	store, err := docstore.Open(fs.NewReal(), filepath.Join(cfg.ListenDir, "docindex.store"))
	if err != nil {
		log.Errorf("opening document store: %v", err)
		return 1
	}
	defer store.Close()

	c, err := cache.New(cfg.CacheCapacity, filepath.Join(cfg.ListenDir, "docindex.cache"))
	if err != nil {
		log.Errorf("opening response cache: %v", err)
		return 1
	}

	server, err := transport.OpenServer(cfg.ListenDir)
	if err != nil {
		log.Errorf("opening listen endpoint: %v", err)
		return 1
	}
	defer transport.CloseServer(cfg.ListenDir, server)

	d := dispatcher.New(store, c, dispatcher.Config{
		DocRoot:             cfg.DocRoot,
		ListenDir:           cfg.ListenDir,
		WorkerCapMultiplier: cfg.WorkerCapMultiplier,
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infof("docindexd listening in %s, serving documents from %s", cfg.ListenDir, cfg.DocRoot)

	if err := d.Serve(ctx, server); err != nil {
		log.Errorf("serve loop: %v", err)
		return 1
	}

	fmt.Fprintln(os.Stderr, "docindexd: shut down cleanly")

	return 0
}
