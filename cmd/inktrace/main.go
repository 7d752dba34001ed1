// seehuhn.de/go/inktrace - a variable-width ink trail renderer
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command inktrace replays a recorded event log through the trail renderer
// and writes the resulting surface as a PNG image.
//
// The event log contains one JSON object per line, for example
//
//	{"type":"move","t":0,"client":{"X":10,"Y":10},"page":{"X":10,"Y":10}}
//	{"type":"resize","t":120,"width":640}
//	{"type":"leave","t":300}
//
// Usage:
//
//	inktrace [flags] [events.jsonl]
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"

	"seehuhn.de/go/inktrace"
	"seehuhn.de/go/inktrace/testcases"
)

func main() {
	if err := run(os.Args[1:], os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, "inktrace:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader) error {
	flags := flag.NewFlagSet("inktrace", flag.ContinueOnError)
	configFile := flags.String("config", "", "TOML file with trail settings")
	out := flags.String("o", "trail.png", "output PNG file")
	pdfOut := flags.String("pdf", "", "also write the trail as a vector PDF")
	width := flags.Float64("width", 1024, "viewport width in logical pixels")
	height := flags.Float64("height", 768, "viewport height in logical pixels")
	docWidth := flags.Float64("doc-width", 0, "document width, defaults to the viewport width")
	docHeight := flags.Float64("doc-height", 0, "document height, defaults to the viewport height")
	ratio := flags.Float64("ratio", 1, "device pixel ratio")
	touch := flags.Bool("touch", false, "simulate a touch screen")
	verbose := flags.Bool("v", false, "log debug messages")
	if err := flags.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	inktrace.SetLogger(logger)

	cfg := inktrace.DefaultConfig()
	if *configFile != "" {
		f, err := os.Open(*configFile)
		if err != nil {
			return err
		}
		cfg, err = inktrace.LoadConfig(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	var in io.Reader = stdin
	switch flags.NArg() {
	case 0:
	case 1:
		f, err := os.Open(flags.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	default:
		return errors.New("too many arguments")
	}

	sc := &testcases.Scenario{
		Width:     *width,
		Height:    *height,
		DocWidth:  *docWidth,
		DocHeight: *docHeight,
		Ratio:     *ratio,
		Touch:     *touch,
	}
	p, err := testcases.NewPlayer(sc.Host(), cfg)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(in)
	n := 0
	for {
		var e testcases.Event
		err := dec.Decode(&e)
		if err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("event %d: %w", n+1, err)
		}
		p.Play(e)
		n++
	}

	r := p.Renderer
	j := r.Journal()
	logger.Info("replayed events",
		"events", n, "mode", r.Mode(),
		"segments", j.Len(), "strokes", len(j.Strokes()), "dropped", j.Dropped())

	if err := writePNG(*out, r); err != nil {
		return err
	}
	if *pdfOut != "" {
		w, h := r.Surface().Size()
		opt := &inktrace.PDFOptions{
			Width:  float64(w),
			Height: float64(h),
			Paper:  1,
			Ink:    inktrace.Gray(cfg.Color),
			Config: cfg,
		}
		if err := j.WritePDF(*pdfOut, opt); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(fname string, r *inktrace.Renderer) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, r.Surface().Image())
}
