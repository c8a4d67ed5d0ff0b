// mdannotate labels ranges of a text and renders the labeled text as HTML.
//
// Labels live in a YAML file next to the text. Every command reads the text
// from files or stdin and the labels from --labels.
//
// Usage:
//
//	mdannotate render --labels notes.yaml notes.md > notes.html
//	mdannotate apply --labels notes.yaml --label PERSON --start 4 --end 9 -w notes.md
//	mdannotate apply --labels notes.yaml --anchor 0:4 --focus 2:1 -w notes.md
//	mdannotate remove --labels notes.yaml --chunk 1 -w notes.md
//	mdannotate compact --labels notes.yaml -w notes.md
//	mdannotate extract --text-out notes.md notes.html > notes.yaml
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/net/html"

	"github.com/dbh/md-annotate/internal/annotate"
	"github.com/dbh/md-annotate/internal/cli"
	"github.com/dbh/md-annotate/internal/config"
	"github.com/dbh/md-annotate/internal/logging"
	"github.com/dbh/md-annotate/internal/render"
	"github.com/dbh/md-annotate/internal/selection"
	"github.com/dbh/md-annotate/internal/source"
	"github.com/dbh/md-annotate/internal/store"
)

// CLI defines the command-line interface for mdannotate.
var CLI struct {
	Config   string `name:"config" short:"c" help:"Configuration file" type:"path" default:"mdannotate.toml"`
	LogLevel string `name:"log-level" help:"Override the configured log level (debug, info, warn, error)"`

	Render  RenderCmd  `cmd:"" help:"Render labeled text as HTML"`
	Apply   ApplyCmd   `cmd:"" help:"Apply a label to a range"`
	Remove  RemoveCmd  `cmd:"" help:"Remove labels lying inside a chunk or range"`
	Compact CompactCmd `cmd:"" help:"Rewrite labels in canonical form"`
	Extract ExtractCmd `cmd:"" help:"Recover text and labels from rendered HTML"`
}

// env is what every command needs after flags are parsed.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newEnv() (*env, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, err
	}
	levelName := cfg.Log.Level
	if CLI.LogLevel != "" {
		levelName = CLI.LogLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logging.New(os.Stderr, level, format)}, nil
}

// Document selects the text and labels a command works on.
type Document struct {
	Paths     []string `arg:"" optional:"" help:"Text files (stdin if none)" type:"path"`
	Labels    string   `short:"l" required:"" help:"Labels file" type:"path"`
	HTMLInput bool     `name:"html-input" help:"Convert the input from HTML to Markdown first"`
}

func (d *Document) load() (string, []annotate.LabelUnit, error) {
	text, err := cli.ReadText(d.Paths)
	if err != nil {
		return "", nil, err
	}
	if d.HTMLInput {
		if text, err = source.FromHTML(text); err != nil {
			return "", nil, err
		}
	}
	units, err := store.Load(d.Labels, text)
	if err != nil {
		return "", nil, err
	}
	return text, units, nil
}

// Output selects where updated labels go.
type Output struct {
	Write bool `short:"w" help:"Write labels back to the labels file instead of stdout"`
}

func (o Output) emit(d Document, text string, units []annotate.LabelUnit) error {
	doc, err := store.Encode(units, text)
	if err != nil {
		return err
	}
	return cli.Emit(os.Stdout, d.Labels, o.Write, doc)
}

// RenderCmd renders labeled text as HTML.
type RenderCmd struct {
	Document
	Markdown bool `help:"Render chunk text as inline Markdown"`
}

func (c *RenderCmd) Run() error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	text, units, err := c.load()
	if err != nil {
		return err
	}
	chunks, err := annotate.NewController(text, annotate.WithLogger(e.logger)).RenderChunks(units)
	if err != nil {
		return err
	}
	out, err := renderer(e.cfg, c.Markdown).RenderString(chunks)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, out)
	return err
}

func renderer(cfg *config.Config, markdown bool) *render.Renderer {
	colors := render.Colors{Labels: cfg.Colors, Overlap: cfg.OverlapColor}
	opts := []render.Option{render.WithColor(colors.Color)}
	if markdown || cfg.Markdown {
		opts = append(opts, render.WithText(render.MarkdownText(nil)))
	}
	return render.New(opts...)
}

// ApplyCmd applies a label to a range given as offsets or as a selection.
type ApplyCmd struct {
	Document
	Output
	Label  string `help:"Label to apply (defaults to the configured label)"`
	Start  int    `help:"Start offset" default:"-1"`
	End    int    `help:"End offset" default:"-1"`
	Bytes  bool   `help:"Interpret --start and --end as byte offsets"`
	Anchor string `help:"Selection anchor as CHUNK:OFFSET in the rendered text"`
	Focus  string `help:"Selection focus as CHUNK:OFFSET in the rendered text"`
}

func (c *ApplyCmd) Run() error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	text, units, err := c.load()
	if err != nil {
		return err
	}
	label := c.Label
	if label == "" {
		label = e.cfg.Label
	}
	ctl := annotate.NewController(text, annotate.WithLogger(e.logger))

	var out []annotate.LabelUnit
	switch {
	case c.Anchor != "" || c.Focus != "":
		snap, err := c.snapshot(ctl, units)
		if err != nil {
			return err
		}
		out, err = ctl.ApplyLabel(units, label, snap)
		if err != nil {
			return err
		}
	case c.Start >= 0 && c.End >= 0:
		r := selection.Range{Start: c.Start, End: c.End}
		if c.Bytes {
			if r.Start, r.End, err = (source.ByteRange{Start: c.Start, End: c.End}).Runes(text); err != nil {
				return err
			}
		}
		out, err = ctl.ApplyRange(units, label, r)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("apply needs --start/--end or --anchor/--focus")
	}
	return c.emit(c.Document, text, out)
}

// snapshot resolves CHUNK:OFFSET endpoints against the rendered chunks, the
// way a browser reports a selection over the rendered page.
func (c *ApplyCmd) snapshot(ctl *annotate.Controller, units []annotate.LabelUnit) (selection.Snapshot, error) {
	chunks, err := ctl.RenderChunks(units)
	if err != nil {
		return selection.Snapshot{}, err
	}
	root := render.New().Nodes(chunks)

	anchor, err := point(root, c.Anchor)
	if err != nil {
		return selection.Snapshot{}, fmt.Errorf("--anchor: %w", err)
	}
	focus, err := point(root, c.Focus)
	if err != nil {
		return selection.Snapshot{}, fmt.Errorf("--focus: %w", err)
	}
	return selection.Snapshot{Anchor: anchor, Focus: focus}, nil
}

func point(root *html.Node, arg string) (selection.Point, error) {
	chunkStr, offsetStr, ok := strings.Cut(arg, ":")
	if !ok {
		return selection.Point{}, fmt.Errorf("want CHUNK:OFFSET, got %q", arg)
	}
	i, err := strconv.Atoi(chunkStr)
	if err != nil {
		return selection.Point{}, fmt.Errorf("chunk %q: %w", chunkStr, err)
	}
	offset, err := strconv.Atoi(offsetStr)
	if err != nil {
		return selection.Point{}, fmt.Errorf("offset %q: %w", offsetStr, err)
	}
	chunk, ok := render.FindChunk(root, i)
	if !ok {
		return selection.Point{}, fmt.Errorf("no chunk %d", i)
	}
	p, ok := render.PointAt(chunk, offset)
	if !ok {
		return selection.Point{}, fmt.Errorf("offset %d outside chunk %d", offset, i)
	}
	return p, nil
}

// RemoveCmd removes the labels lying entirely inside a chunk or range.
type RemoveCmd struct {
	Document
	Output
	Chunk int `help:"Index of the clicked chunk" default:"-1"`
	Start int `help:"Start offset" default:"-1"`
	End   int `help:"End offset" default:"-1"`
}

func (c *RemoveCmd) Run() error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	text, units, err := c.load()
	if err != nil {
		return err
	}
	ctl := annotate.NewController(text, annotate.WithLogger(e.logger))

	r := selection.Range{Start: c.Start, End: c.End}
	if c.Chunk >= 0 {
		chunks, err := ctl.RenderChunks(units)
		if err != nil {
			return err
		}
		if c.Chunk >= len(chunks) {
			return fmt.Errorf("no chunk %d (text has %d chunks)", c.Chunk, len(chunks))
		}
		r = selection.Range{Start: chunks[c.Chunk].Start, End: chunks[c.Chunk].End}
	} else if r.Start < 0 || r.End < 0 {
		return fmt.Errorf("remove needs --chunk or --start/--end")
	}
	return c.emit(c.Document, text, ctl.RemoveLabelsInRange(units, r.Start, r.End))
}

// CompactCmd rewrites labels in canonical form.
type CompactCmd struct {
	Document
	Output
}

func (c *CompactCmd) Run() error {
	text, units, err := c.load()
	if err != nil {
		return err
	}
	out, err := annotate.Normalize(text, units)
	if err != nil {
		return err
	}
	return c.emit(c.Document, text, out)
}

// ExtractCmd recovers text and labels from HTML produced by render.
type ExtractCmd struct {
	Path    string `arg:"" optional:"" help:"Rendered HTML file (stdin if omitted)" type:"path"`
	TextOut string `name:"text-out" help:"Write the recovered text to this file" type:"path"`
}

func (c *ExtractCmd) Run() error {
	var paths []string
	if c.Path != "" {
		paths = []string{c.Path}
	}
	markup, err := cli.ReadText(paths)
	if err != nil {
		return err
	}
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return err
	}
	text, units, err := render.Extract(doc)
	if err != nil {
		return err
	}
	if c.TextOut != "" {
		if err := cli.Emit(nil, c.TextOut, true, text); err != nil {
			return err
		}
	}
	out, err := store.Encode(units, text)
	if err != nil {
		return err
	}
	_, err = os.Stdout.WriteString(out)
	return err
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("mdannotate"),
		kong.Description("Label overlapping ranges of a text and render them as HTML"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
