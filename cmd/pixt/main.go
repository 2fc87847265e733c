package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-colorable"

	"github.com/wbrown/pixt"
	"github.com/wbrown/pixt/imageutil"
	"github.com/wbrown/pixt/internal/config"
	"github.com/wbrown/pixt/internal/termsize"
)

// errUsage marks command line mistakes, reported with the flag summary.
var errUsage = errors.New("usage")

// env is the process state run works against.
type env struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	termWidth int
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// options are the parsed command line.
type options struct {
	configPath string
	output     string
	verbose    bool
	args       []string
	set        map[string]bool

	style       string
	colored     bool
	width       int
	height      int
	paletteFile string
	font        string
	filter      string
	compact     bool
	scale       int
	adjust      imageutil.Adjustments
}

func main() {
	var stdout io.Writer = os.Stdout
	if termsize.IsTerminal(os.Stdout) {
		stdout = colorable.NewColorable(os.Stdout)
	}
	os.Exit(run(os.Args[1:], env{
		stdin:     os.Stdin,
		stdout:    stdout,
		stderr:    os.Stderr,
		termWidth: termsize.Width(os.Stdout.Fd()),
	}))
}

func run(args []string, e env) int {
	fs := flag.NewFlagSet("pixt", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	opts, err := parseFlags(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(opts)
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		return 1
	}
	if !opts.verbose {
		level, _ = cfg.Level()
		logger = slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))
	}

	if err := convert(cfg, opts, e, logger); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(e.stderr, "pixt: %v\n", err)
			fs.Usage()
			return 2
		}
		logger.Error("conversion failed", "err", err)
		return 1
	}
	return 0
}

func parseFlags(fs *flag.FlagSet, args []string) (*options, error) {
	opts := &options{}
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: pixt [flags] [chars] image...\n\n")
		fmt.Fprintf(fs.Output(), "Styles: %s\n\n", strings.Join(pixt.StyleNames(), ", "))
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "",
		"Path to a TOML config file (default: user config then ./pixt.toml)")
	fs.StringVar(&opts.output, "o", "", "Shorthand for -output")
	fs.StringVar(&opts.output, "output", "",
		"Path to save the output; .html, .htm and .png select the format "+
			"(if not specified, prints to stdout)")
	fs.BoolVar(&opts.verbose, "v", false, "Enable debug logging")

	fs.StringVar(&opts.style, "s", "", "Shorthand for -style")
	fs.StringVar(&opts.style, "style", "", "Character style")
	fs.BoolVar(&opts.colored, "c", false, "Shorthand for -colored")
	fs.BoolVar(&opts.colored, "colored", false, "Colored output")
	fs.IntVar(&opts.width, "w", 0, "Shorthand for -width")
	fs.IntVar(&opts.width, "width", 0,
		"Target width in characters (default: terminal width)")
	fs.IntVar(&opts.height, "H", 0, "Shorthand for -height")
	fs.IntVar(&opts.height, "height", 0,
		"Target height in pixels, two per output line")
	fs.StringVar(&opts.paletteFile, "palette-file", "",
		"Custom style palette, one row of characters per line")
	fs.StringVar(&opts.font, "font", "", "TrueType font for PNG output")
	fs.StringVar(&opts.filter, "filter", "", "Resize filter: "+
		"catmullrom, linear, nearest, lanczos or box")
	fs.BoolVar(&opts.compact, "compact", false,
		"Skip terminal color escapes that repeat the current colors")
	fs.IntVar(&opts.scale, "scale", 0, "Pixel scale of PNG output")
	fs.BoolVar(&opts.adjust.Invert, "invert", false,
		"Invert the image, for light terminal backgrounds")
	fs.BoolVar(&opts.adjust.Grayscale, "grayscale", false,
		"Convert the image to grayscale before rendering")
	fs.Func("brightness", "Brightness change in percent, -100 to 100",
		float32Flag(&opts.adjust.Brightness))
	fs.Func("contrast", "Contrast change in percent, -100 to 100",
		float32Flag(&opts.adjust.Contrast))
	fs.Func("gamma", "Gamma correction, 1 leaves the image unchanged",
		float32Flag(&opts.adjust.Gamma))

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.args = fs.Args()
	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	return opts, nil
}

func float32Flag(dst *float32) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return err
		}
		*dst = float32(v)
		return nil
	}
}

// loadConfig reads the config files and applies the flags given on the
// command line over them.
func loadConfig(opts *options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		if _, err := os.Stat(opts.configPath); err != nil {
			return nil, err
		}
		cfg, err = config.LoadFiles(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	set := func(names ...string) bool {
		for _, n := range names {
			if opts.set[n] {
				return true
			}
		}
		return false
	}
	if set("s", "style") {
		cfg.Style = opts.style
	}
	if set("c", "colored") {
		cfg.Colored = opts.colored
	}
	if set("w", "width") {
		cfg.Width = opts.width
	}
	if set("H", "height") {
		cfg.Height = opts.height
	}
	if set("palette-file") {
		cfg.PaletteFile = opts.paletteFile
	}
	if set("font") {
		cfg.Font = opts.font
	}
	if set("filter") {
		cfg.Filter = opts.filter
	}
	if set("compact") {
		cfg.Compact = opts.compact
	}
	if set("scale") {
		cfg.PNG.Scale = opts.scale
	}
	if set("invert") {
		cfg.Adjust.Invert = opts.adjust.Invert
	}
	if set("grayscale") {
		cfg.Adjust.Grayscale = opts.adjust.Grayscale
	}
	if set("brightness") {
		cfg.Adjust.Brightness = opts.adjust.Brightness
	}
	if set("contrast") {
		cfg.Adjust.Contrast = opts.adjust.Contrast
	}
	if set("gamma") {
		cfg.Adjust.Gamma = opts.adjust.Gamma
	}
	return cfg, cfg.Validate()
}

// resolvePalette picks the palette for the configured style. A custom
// style without a palette file takes its characters from the first
// argument, which is consumed.
func resolvePalette(cfg *config.Config, args []string) (*pixt.Palette, pixt.ColorMode, []string, error) {
	style, err := cfg.StyleValue()
	if err != nil {
		return nil, pixt.ColorNone, nil, err
	}
	mode := style.ColorMode(cfg.Colored)

	if style != pixt.StyleCustom {
		p, err := style.Palette(cfg.Colored)
		return p, mode, args, err
	}
	if cfg.PaletteFile != "" {
		p, err := pixt.LoadPaletteFile(cfg.PaletteFile)
		return p, mode, args, err
	}
	if len(args) == 0 {
		return nil, mode, nil, fmt.Errorf("%w: custom style needs a character string or -palette-file", errUsage)
	}
	p, err := pixt.ParseRamp(args[0])
	if err != nil {
		return nil, mode, nil, err
	}
	return p, mode, args[1:], nil
}

func convert(cfg *config.Config, opts *options, e env, logger *slog.Logger) (err error) {
	palette, mode, inputs, err := resolvePalette(cfg, opts.args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: no input images", errUsage)
	}
	if w := palette.MaxWidth(); w > 1 {
		logger.Warn("palette has wide glyphs, columns will not line up",
			"width", w)
	}

	interp, err := cfg.Interpolation()
	if err != nil {
		return err
	}

	format := pixt.FormatFromPath(opts.output)
	if format != pixt.FormatTerminal && len(inputs) > 1 {
		return fmt.Errorf("%w: %s output takes a single input image", errUsage, format)
	}
	sinkOpts := []pixt.SinkOption{
		pixt.WithHTMLColors(cfg.HTML.Foreground, cfg.HTML.Background),
		pixt.WithScale(cfg.PNG.Scale),
	}
	if cfg.Compact {
		sinkOpts = append(sinkOpts, pixt.WithCompactEscapes())
	}
	if format == pixt.FormatPNG {
		fonts, err := pixt.LoadFontBitmaps(cfg.Font)
		if err != nil {
			return err
		}
		sinkOpts = append(sinkOpts, pixt.WithFontBitmaps(fonts))
	}
	// Fail on unsupported combinations before the output file exists.
	if _, err := pixt.NewSink(io.Discard, format, mode, sinkOpts...); err != nil {
		return err
	}

	renderer := pixt.NewRenderer(palette,
		pixt.WithFormat(format),
		pixt.WithColorMode(mode),
		pixt.WithSinkOptions(sinkOpts...),
	)

	dst := e.stdout
	if opts.output != "" {
		var f *os.File
		f, err = os.OpenFile(opts.output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output: %w", cerr)
			}
		}()
		dst = f
	}
	counter := &countingWriter{w: dst}
	w := bufio.NewWriter(counter)

	logger.Debug("rendering",
		"style", cfg.Style, "colored", cfg.Colored, "mode", mode,
		"format", format, "filter", interp, "inputs", len(inputs))

	for _, input := range inputs {
		if err := renderOne(renderer, input, cfg, interp, e, w, logger); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if opts.output != "" {
		logger.Info("output written", "path", opts.output, "format", format,
			"size", humanize.IBytes(uint64(counter.n)))
	}
	return nil
}

func renderOne(r *pixt.Renderer, input string, cfg *config.Config, interp imageutil.Interpolation,
	e env, w io.Writer, logger *slog.Logger) error {
	begin := time.Now()

	var src *image.NRGBA
	var err error
	if input == "-" {
		src, err = imageutil.Decode(e.stdin)
	} else {
		src, err = imageutil.LoadImage(input)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	srcW, srcH := imageutil.Dimensions(src)
	img := imageutil.Fit(imageutil.Flatten(src, color.Black),
		imageutil.Size{Width: cfg.Width, Height: cfg.Height},
		e.termWidth, interp)
	img = imageutil.Adjust(img, cfg.Adjust.Adjustments())
	dstW, dstH := imageutil.Dimensions(img)

	if err := r.Render(img, w); err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	cells, lines := r.Stats()
	logger.Debug("rendered",
		"input", input,
		"source", fmt.Sprintf("%dx%d", srcW, srcH),
		"resized", fmt.Sprintf("%dx%d", dstW, dstH),
		"cells", cells, "lines", lines,
		"elapsed", time.Since(begin))
	return nil
}
