// Command fontstash renders text with the fontstash glyph atlas to a PNG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/fontstash"
	"github.com/gogpu/fontstash/atlas"
)

// config holds the command line settings.
type config struct {
	width, height int
	output        string
	atlasOut      string
	fontPath      string
	parser        string
	size          float64
	blur, stroke  int
	canvas        int
	text          string
}

func main() {
	var cfg config
	flag.IntVar(&cfg.width, "width", 800, "image width")
	flag.IntVar(&cfg.height, "height", 300, "image height")
	flag.StringVar(&cfg.output, "output", "text.png", "output file")
	flag.StringVar(&cfg.atlasOut, "atlas", "", "write the first glyph atlas to this file")
	flag.StringVar(&cfg.fontPath, "font", "", "TTF/OTF font file (default: Go Regular)")
	flag.StringVar(&cfg.parser, "parser", "ximage", "font parser: ximage or freetype")
	flag.Float64Var(&cfg.size, "size", 32, "font size in pixels")
	flag.IntVar(&cfg.blur, "blur", 0, "glyph blur radius")
	flag.IntVar(&cfg.stroke, "stroke", 0, "glyph stroke radius")
	flag.IntVar(&cfg.canvas, "canvas", 512, "atlas size")
	flag.StringVar(&cfg.text, "text", "The quick brown fox\njumps over the lazy dog", "text to draw, \\n for new lines")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		fontstash.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

// run renders cfg.text to cfg.output. The font system is closed on every
// return path.
func run(cfg config) (err error) {
	fs, err := fontstash.New(
		fontstash.WithCanvasSize(cfg.canvas, cfg.canvas),
		fontstash.WithBlur(cfg.blur),
		fontstash.WithStroke(cfg.stroke),
		fontstash.WithParser(cfg.parser),
		fontstash.WithAtlasFull(func(a *atlas.Atlas) {
			log.Printf("atlas %d full, starting a new one", a.ID())
		}),
	)
	if err != nil {
		return fmt.Errorf("create font system: %w", err)
	}
	defer func() {
		err = errors.Join(err, fs.Close())
	}()

	if cfg.fontPath != "" {
		err = fs.AddFontFile(cfg.fontPath)
	} else {
		err = fs.AddFont(goregular.TTF)
	}
	if err != nil {
		return fmt.Errorf("add font: %w", err)
	}
	// Codepoints the first font lacks fall back to Go Mono.
	if err := fs.AddFont(gomono.TTF); err != nil {
		return fmt.Errorf("add fallback font: %w", err)
	}
	fs.SetSize(cfg.size)

	img := image.NewRGBA(image.Rect(0, 0, cfg.width, cfg.height))
	drawBackground(img)

	s := strings.ReplaceAll(cfg.text, `\n`, "\n")
	sink := fontstash.NewSoftwareSink(img)
	if _, err := fs.DrawTextColors(sink, 20, 20, s, rainbow(s), 0); err != nil {
		return fmt.Errorf("draw text: %w", err)
	}

	b, _ := fs.TextBounds(20, 20, s)
	log.Printf("Text bounds %.0fx%.0f at (%.0f, %.0f)", b.Width(), b.Height(), b.MinX, b.MinY)

	if err := savePNG(cfg.output, img); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if cfg.atlasOut != "" && len(fs.Atlases()) > 0 {
		if err := savePNG(cfg.atlasOut, fs.Atlases()[0].Image()); err != nil {
			return fmt.Errorf("save atlas: %w", err)
		}
	}

	st := fs.Stats()
	log.Printf("Text saved to %s (%dx%d), %d glyphs in %d atlases\n",
		cfg.output, cfg.width, cfg.height, st.Rasterized, len(fs.Atlases()))
	return nil
}

func drawBackground(img *image.RGBA) {
	h := img.Bounds().Dy()
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h)
		c := color.RGBA{uint8(20 + t*60), uint8(30 + t*40), uint8(60 + t*50), 0xff}
		draw.Draw(img, image.Rect(0, y, img.Bounds().Dx(), y+1), image.NewUniform(c), image.Point{}, draw.Src)
	}
}

// rainbow returns one color per codepoint of s.
func rainbow(s string) []color.Color {
	palette := []color.Color{
		color.RGBA{0xff, 0x6b, 0x6b, 0xff},
		color.RGBA{0xff, 0xd9, 0x3d, 0xff},
		color.RGBA{0x6b, 0xcb, 0x77, 0xff},
		color.RGBA{0x4d, 0x96, 0xff, 0xff},
		color.RGBA{0xc7, 0x7d, 0xff, 0xff},
	}
	var colors []color.Color
	for i := range []rune(s) {
		colors = append(colors, palette[i%len(palette)])
	}
	return colors
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path) // #nosec G304 -- output path is provided by the user
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
