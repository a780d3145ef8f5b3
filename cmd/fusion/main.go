package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Xemius/graphql-platform/internal/compose"
	"github.com/Xemius/graphql-platform/internal/eventbus"
	"github.com/Xemius/graphql-platform/internal/events"
	"github.com/Xemius/graphql-platform/internal/otel"
	"github.com/Xemius/graphql-platform/internal/runid"
	"github.com/Xemius/graphql-platform/internal/watch"
)

const rootUsage = `fusion — GraphQL subgraph composition tools

USAGE:
  fusion <command> [flags]

COMMANDS:
  compose          Merge subgraph schemas into one supergraph document
  validate         Check that the subgraph schemas compose, write nothing
  watch            Recompose whenever a subgraph schema changes
  help             Show help for any command
`

const composeUsage = `compose FLAGS:
  -schema.dir <dir>        Directory walked for *.graphql subgraph schemas (default: .)
  -schema.manifest <file>  YAML manifest naming each subgraph and its schema file;
                           overrides -schema.dir
  -out <file>              Write the supergraph document to file (default: stdout)
  -otel.endpoint <addr>    OTLP collector endpoint
  -otel.service <name>     OpenTelemetry service name (default: fusion)
  -verbose                 Debug logging
`

const validateUsage = `validate FLAGS:
  -schema.dir <dir>        Directory walked for *.graphql subgraph schemas (default: .)
  -schema.manifest <file>  YAML manifest naming each subgraph and its schema file;
                           overrides -schema.dir
  -verbose                 Debug logging
  (Exits non-zero when composition reports diagnostics)
`

const watchUsage = `watch FLAGS:
  -schema.dir <dir>          Directory walked for *.graphql subgraph schemas (default: .)
  -schema.manifest <file>    YAML manifest naming each subgraph and its schema file;
                             overrides -schema.dir
  -out <file>                Rewrite the supergraph document on every change
                             (default: stdout)
  -watch.debounce <duration> Quiet period before recomposing, e.g. 300ms (default: 500ms)
  -otel.endpoint <addr>      OTLP collector endpoint
  -otel.service <name>       OpenTelemetry service name (default: fusion)
  -verbose                   Debug logging
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimRight(err.Error(), "\n"))
		os.Exit(1)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("fusion", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		// print usage on parse error
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "compose":
		return cmdCompose(cmdArgs)
	case "validate":
		return cmdValidate(cmdArgs)
	case "watch":
		return cmdWatch(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "compose":
		fmt.Print(composeUsage)
	case "validate":
		fmt.Print(validateUsage)
	case "watch":
		fmt.Print(watchUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func cmdCompose(args []string) error {
	schemaDir := "."
	manifestPath := ""
	outFile := ""
	otelEndpoint := ""
	otelService := "fusion"
	verbose := false

	fs := flag.NewFlagSet("compose", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaDir, "schema.dir", schemaDir, "Directory walked for subgraph schemas")
	fs.StringVar(&manifestPath, "schema.manifest", manifestPath, "YAML subgraph manifest")
	fs.StringVar(&outFile, "out", outFile, "Write the supergraph document to file")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	fs.BoolVar(&verbose, "verbose", verbose, "Debug logging")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, composeUsage)
		return err
	}
	setupLogging(verbose)

	disc, err := newDiscovery(schemaDir, manifestPath)
	if err != nil {
		return err
	}

	eventbus.Use(eventbus.New())
	logComposition()
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	ctx, _ := runid.NewContext(context.Background())
	sdl, err := compose.Compose(ctx, disc)
	if err != nil {
		return err
	}
	if outFile == "" {
		fmt.Print(sdl)
		return nil
	}
	return os.WriteFile(outFile, []byte(sdl), 0644)
}

func cmdValidate(args []string) error {
	schemaDir := "."
	manifestPath := ""
	verbose := false

	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaDir, "schema.dir", schemaDir, "Directory walked for subgraph schemas")
	fs.StringVar(&manifestPath, "schema.manifest", manifestPath, "YAML subgraph manifest")
	fs.BoolVar(&verbose, "verbose", verbose, "Debug logging")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, validateUsage)
		return err
	}
	setupLogging(verbose)

	disc, err := newDiscovery(schemaDir, manifestPath)
	if err != nil {
		return err
	}

	eventbus.Use(eventbus.New())
	logComposition()

	ctx, _ := runid.NewContext(context.Background())
	if _, err := compose.Compose(ctx, disc); err != nil {
		return err
	}
	return nil
}

func cmdWatch(args []string) error {
	schemaDir := "."
	manifestPath := ""
	outFile := ""
	debounce := watch.DefaultDebounce
	otelEndpoint := ""
	otelService := "fusion"
	verbose := false

	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaDir, "schema.dir", schemaDir, "Directory walked for subgraph schemas")
	fs.StringVar(&manifestPath, "schema.manifest", manifestPath, "YAML subgraph manifest")
	fs.StringVar(&outFile, "out", outFile, "Write the supergraph document to file")
	fs.DurationVar(&debounce, "watch.debounce", debounce, "Quiet period before recomposing")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	fs.BoolVar(&verbose, "verbose", verbose, "Debug logging")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, watchUsage)
		return err
	}
	setupLogging(verbose)

	eventbus.Use(eventbus.New())
	logComposition()
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	// Discovery runs fresh on every change so schema files added or
	// removed while watching are picked up.
	recompose := func() {
		disc, err := newDiscovery(schemaDir, manifestPath)
		if err != nil {
			log.Error().Err(err).Msg("discovery failed")
			return
		}
		ctx, _ := runid.NewContext(context.Background())
		sdl, err := compose.Compose(ctx, disc)
		if err != nil {
			log.Error().Msg(strings.TrimRight(err.Error(), "\n"))
			return
		}
		if outFile == "" {
			fmt.Print(sdl)
			return
		}
		if err := os.WriteFile(outFile, []byte(sdl), 0644); err != nil {
			log.Error().Err(err).Str("path", outFile).Msg("failed to write supergraph")
		}
	}

	disc, err := newDiscovery(schemaDir, manifestPath)
	if err != nil {
		return err
	}
	roots := []string{schemaDir}
	if wr, ok := disc.(interface{ WatchRoots() []string }); ok {
		roots = wr.WatchRoots()
	}

	w, err := watch.New(debounce, recompose)
	if err != nil {
		return err
	}
	defer w.Close()
	for _, root := range roots {
		if err := w.Add(root); err != nil {
			return fmt.Errorf("watching %s: %w", root, err)
		}
	}

	recompose()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		w.Close()
	}()
	return w.Start()
}

// newDiscovery picks the discovery source: an explicit manifest wins
// over the schema directory.
func newDiscovery(dir, manifestPath string) (compose.Discovery, error) {
	if manifestPath != "" {
		return compose.NewManifestDiscovery(manifestPath)
	}
	return compose.NewDirectoryDiscovery(dir)
}

func setupLogging(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// logComposition mirrors composition events into the structured log.
func logComposition() {
	eventbus.Subscribe(func(ctx context.Context, e events.ComposeStart) {
		evt := log.Debug().Str("target", e.Target)
		if rid, ok := runid.FromContext(ctx); ok {
			evt = evt.Str("run", rid)
		}
		evt.Msg("composition started")
	})
	eventbus.Subscribe(func(_ context.Context, e events.SubgraphLoadStart) {
		log.Debug().Str("subgraph", e.Subgraph).Msg("loading subgraph")
	})
	eventbus.Subscribe(func(_ context.Context, e events.SubgraphLoadFinish) {
		if e.Err != nil {
			log.Warn().Str("subgraph", e.Subgraph).Dur("duration", e.Duration).Err(e.Err).Msg("subgraph load failed")
			return
		}
		log.Debug().Str("subgraph", e.Subgraph).Dur("duration", e.Duration).Msg("subgraph loaded")
	})
	eventbus.Subscribe(func(_ context.Context, e events.BuildFinish) {
		log.Debug().Int("types", e.Types).Int("entities", e.Entities).Msg("supergraph built")
	})
	eventbus.Subscribe(func(_ context.Context, e events.ComposeFinish) {
		if e.Err != nil {
			// The failure itself is reported by the caller.
			return
		}
		log.Info().
			Str("target", e.Target).
			Int("subgraphs", e.Subgraphs).
			Int("bytes", e.Bytes).
			Dur("duration", e.Duration).
			Msg("composition complete")
	})
}
