// Command bbml renders a BbML (or markdown) document to the terminal.
//
//	bbml [flags] [file]
//
// With no file argument, input is read from stdin.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/edlearn/bbml"
	"github.com/edlearn/bbml/internal/config"
	"github.com/edlearn/bbml/layout"
	"github.com/edlearn/bbml/termstyle"
)

func main() {
	cfg := config.Load()

	width := pflag.IntP("width", "w", cfg.Width, "target width in columns (0 = terminal width)")
	md := pflag.BoolP("markdown", "m", false, "treat input as markdown")
	color := pflag.String("color", cfg.Color, "color output: auto, always or never")
	showLinks := pflag.BoolP("links", "l", false, "print the link table after the document")
	verbose := pflag.BoolP("verbose", "v", false, "log skipped markup to stderr")
	pflag.Parse()

	cfg.Color = *color
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "bbml:", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	src, err := readInput(pflag.Arg(0))
	if err != nil {
		log.Error("read input", "error", err)
		os.Exit(1)
	}

	var content *bbml.Content
	if *md {
		content, err = bbml.ParseMarkdown(src, bbml.WithLogger(log))
	} else {
		content, err = bbml.Parse(string(src), bbml.WithLogger(log))
	}
	if err != nil {
		log.Error("parse content", "error", err)
		os.Exit(1)
	}

	doc, err := content.LayoutWith(targetWidth(*width), layout.Config{Indent: cfg.Indent})
	if err != nil {
		log.Error("layout", "error", err)
		os.Exit(1)
	}

	r := termstyle.NewRenderer(useColor(cfg.Color))
	fmt.Println(r.Document(doc))

	if links := content.Links(); *showLinks && len(links) > 0 {
		fmt.Println()
		for i, href := range links {
			fmt.Printf("[%d] %s\n", i, href)
		}
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// targetWidth resolves 0 to the current terminal width, falling back to 80
// when stdout is not a terminal.
func targetWidth(width int) int {
	if width > 0 {
		return width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
