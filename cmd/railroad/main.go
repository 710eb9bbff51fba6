// Command railroad renders a railroad (syntax) diagram described as a
// JSON data literal to SVG, a character grid, or PNG on standard output.
// It exits 0 on success and nonzero with a single-line message when the
// input is malformed.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"

	"github.com/go-railroad/diagram/lib/png"
	"github.com/go-railroad/diagram/lib/urlenc"
	"github.com/go-railroad/diagram/railmetric"
	"github.com/go-railroad/diagram/railroad"
)

type flags struct {
	format     string
	out        string
	watch      bool
	share      bool
	fromShare  string
	hrefScript string
	fontFile   string

	maxWidth float64
	reverse  bool
	simple   bool
	title    string
	desc     string
	cssStyle string
	tint     bool
	accent   string
	debug    bool
}

func main() {
	var f flags
	pflag.StringVarP(&f.format, "format", "f", "svg", "output format: svg, txt, or png")
	pflag.StringVarP(&f.out, "out", "o", "", "output file (default: stdout)")
	pflag.BoolVarP(&f.watch, "watch", "w", false, "re-render whenever the input file changes")
	pflag.BoolVar(&f.share, "share", false, "print a URL-safe encoding of the input instead of rendering")
	pflag.StringVar(&f.fromShare, "from-share", "", "render a diagram from a --share encoding instead of a file")
	pflag.StringVar(&f.hrefScript, "href-script", "", "JavaScript file defining Fn(kind, text, payload) to resolve hyperlinks")
	pflag.StringVar(&f.fontFile, "font", "", "TTF font file for exact text measurement")
	pflag.Float64Var(&f.maxWidth, "max-width", 0, "advisory maximum width driving line wrapping")
	pflag.BoolVar(&f.reverse, "reverse", false, "mirror the diagram horizontally")
	pflag.BoolVar(&f.simple, "simple-ends", false, "use single-tick end markers")
	pflag.StringVar(&f.title, "title", "", "document title (svg only)")
	pflag.StringVar(&f.desc, "desc", "", "document description, Markdown accepted (svg only)")
	pflag.StringVar(&f.cssStyle, "css-style", "", "stylesheet to embed (svg only)")
	pflag.BoolVar(&f.tint, "tint", false, "tint boxes by choice-nesting depth (svg only)")
	pflag.StringVar(&f.accent, "accent", "", "accent color anchoring the tint palette")
	pflag.BoolVar(&f.debug, "debug", false, "annotate output with stable node path identifiers")
	pflag.Parse()

	ctx := context.Background()
	log := slog.Make(sloghuman.Sink(os.Stderr))

	if err := run(ctx, log, &f, pflag.Args()); err != nil {
		log.Error(ctx, "railroad failed", slog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log slog.Logger, f *flags, args []string) error {
	settings, err := buildSettings(f)
	if err != nil {
		return err
	}

	if f.fromShare != "" {
		raw, err := urlenc.Decode(f.fromShare)
		if err != nil {
			return err
		}
		return renderOnce(ctx, log, f, settings, []byte(raw))
	}

	if len(args) != 1 {
		return fmt.Errorf("usage: railroad [flags] <diagram.json | ->")
	}
	path := args[0]

	raw, err := readInput(path)
	if err != nil {
		return err
	}

	if f.share {
		encoded, err := urlenc.Encode(string(raw))
		if err != nil {
			return err
		}
		return writeOutput(f.out, []byte(encoded+"\n"))
	}

	if err := renderOnce(ctx, log, f, settings, raw); err != nil {
		if !f.watch {
			return err
		}
		log.Error(ctx, "render failed", slog.Error(err))
	}
	if !f.watch {
		return nil
	}
	if path == "-" {
		return fmt.Errorf("--watch requires a file path, not stdin")
	}
	return watch(ctx, log, f, settings, path)
}

func buildSettings(f *flags) (*railroad.Settings, error) {
	s := &railroad.Settings{
		MaxWidth:    f.maxWidth,
		Reverse:     f.reverse,
		Title:       f.title,
		Description: f.desc,
		CSSStyle:    f.cssStyle,
		TintByDepth: f.tint,
		AccentColor: f.accent,
		Debug:       f.debug,
	}
	s.Text.MaxWidth = int(f.maxWidth)
	if f.simple {
		s.EndClass = railroad.EndSimple
	}
	if f.hrefScript != "" {
		source, err := os.ReadFile(f.hrefScript)
		if err != nil {
			return nil, fmt.Errorf("failed to read href script: %w", err)
		}
		resolver, err := railmetric.NewScriptHrefResolver(string(source))
		if err != nil {
			return nil, err
		}
		s.HrefResolver = resolver
	}
	if f.fontFile != "" {
		data, err := os.ReadFile(f.fontFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		measure, err := railmetric.NewTrueTextMeasure(data, 13)
		if err != nil {
			return nil, err
		}
		s.TextMeasure = measure
	}
	return s, nil
}

func renderOnce(ctx context.Context, log slog.Logger, f *flags, s *railroad.Settings, raw []byte) error {
	var literal any
	if err := json.Unmarshal(raw, &literal); err != nil {
		return fmt.Errorf("input is not valid JSON: %w", err)
	}

	switch f.format {
	case "txt":
		out, err := railroad.RenderText(literal, s)
		if err != nil {
			return err
		}
		return writeOutput(f.out, []byte(out+"\n"))
	case "svg":
		out, err := railroad.RenderVector(literal, s)
		if err != nil {
			return err
		}
		return writeOutput(f.out, []byte(out))
	case "png":
		svg, err := railroad.RenderVector(literal, s)
		if err != nil {
			return err
		}
		log.Info(ctx, "rasterizing to PNG")
		pw, err := png.InitPlaywrightWithPrompt()
		if err != nil {
			return err
		}
		defer func() {
			if err := pw.Cleanup(); err != nil {
				log.Error(ctx, "failed to clean up browser", slog.Error(err))
			}
		}()
		data, err := png.ConvertSVG(pw.Browser, []byte(svg))
		if err != nil {
			return err
		}
		return writeOutput(f.out, data)
	default:
		return fmt.Errorf("unknown format %q: want svg, txt, or png", f.format)
	}
}

func watch(ctx context.Context, log slog.Logger, f *flags, s *railroad.Settings, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}
	log.Info(ctx, "watching for changes", slog.F("path", path))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			raw, err := readInput(path)
			if err != nil {
				log.Error(ctx, "failed to re-read input", slog.Error(err))
				continue
			}
			if err := renderOnce(ctx, log, f, s, raw); err != nil {
				log.Error(ctx, "render failed", slog.Error(err))
				continue
			}
			log.Info(ctx, "re-rendered", slog.F("path", path))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error(ctx, "watch error", slog.Error(err))
		}
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(out string, data []byte) error {
	if out == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
