// Copyright 2021 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cutseries

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// A Figure is a set of named series plus the axis and labeling
// metadata a sink needs to render them.
type Figure struct {
	// Name is the artifact base name (without extension).
	Name string

	Title  string
	XLabel string
	YLabel string

	// Series are drawn in order; a single-point series is drawn
	// as an isolated marker rather than a connected line.
	Series []Series

	// RefY, if non-nil, draws a horizontal reference line and
	// forces the y-range to include that value.
	RefY *float64

	// XMin/XMax, if non-nil, clip the visible x-range. They are
	// used to restrict overlaid curves to a common domain.
	XMin, XMax *float64
}

// A Sink receives finished figures. The production sink renders PNG
// files; tests substitute a capture sink.
type Sink interface {
	Render(fig Figure) error
}

// PNGDir is a Sink that renders each figure to "<Name>.png" inside
// Dir. The directory is created if absent.
type PNGDir struct {
	Dir string

	// DPI overrides the render resolution. Zero means 300.
	DPI int
}

const pointRad = 3

// Render implements Sink.
func (d PNGDir) Render(fig Figure) error {
	if err := os.MkdirAll(d.Dir, 0777); err != nil {
		return err
	}

	pl := plot.New()
	pl.Title.Text = fig.Title
	pl.X.Label.Text = fig.XLabel
	pl.Y.Label.Text = fig.YLabel
	pl.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	for i, s := range fig.Series {
		xys := make(plotter.XYs, len(s.Points))
		for j, p := range s.Points {
			xys[j].X, xys[j].Y = p.X, p.Y
		}
		if s.MarkerOnly() {
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return fmt.Errorf("series %s: %v", s.Algo, err)
			}
			sc.GlyphStyle.Color = plotutil.Color(i)
			sc.GlyphStyle.Radius = pointRad
			pl.Add(sc)
			pl.Legend.Add(s.Algo, sc)
		} else {
			ln, err := plotter.NewLine(xys)
			if err != nil {
				return fmt.Errorf("series %s: %v", s.Algo, err)
			}
			ln.Color = plotutil.Color(i)
			pl.Add(ln)
			pl.Legend.Add(s.Algo, ln)
		}
	}

	if fig.XMin != nil {
		pl.X.Min = *fig.XMin
	}
	if fig.XMax != nil {
		pl.X.Max = *fig.XMax
	}

	if fig.RefY != nil {
		// Force the reference value onto the graph so there is
		// a scale to read the curves against.
		if pl.Y.Min > *fig.RefY {
			pl.Y.Min = *fig.RefY
		}
		if pl.Y.Max < *fig.RefY {
			pl.Y.Max = *fig.RefY
		}
		ref := plotter.NewFunction(func(float64) float64 { return *fig.RefY })
		ref.LineStyle.Color = color.Gray{0x80}
		ref.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		pl.Add(ref)
	}

	dpi := d.DPI
	if dpi == 0 {
		dpi = 300
	}
	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(20*vg.Centimeter, 15*vg.Centimeter),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(color.White),
	)}
	pl.Draw(draw.New(can))

	file := filepath.Join(d.Dir, fig.Name) + ".png"
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
