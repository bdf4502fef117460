// Package scene reads the line-oriented scene script format and drives the
// rasterizer with it.
//
// A script looks like:
//
//	png 60 30 out.png
//	hyp
//	position 4 -1 -1 0 1  1 -1 0 2  0 1 0 1
//	color 3 1 0 0  0 1 0  0 0 1
//	drawArraysTriangles 0 3
//
// The whole script is parsed and validated before anything is drawn.
package scene

import (
	"fmt"

	"trirast/internal/logging"
	"trirast/internal/raster"
)

// MaxDimension bounds the image width and height a script may ask for.
const MaxDimension = 16384

// DrawMode selects how a draw command walks its vertices.
type DrawMode int

const (
	DrawArrays   DrawMode = iota // consecutive vertices
	DrawElements                 // vertices through the index list
)

func (m DrawMode) String() string {
	switch m {
	case DrawArrays:
		return "drawArraysTriangles"
	case DrawElements:
		return "drawElementsTriangles"
	}
	return fmt.Sprintf("DrawMode(%d)", int(m))
}

// Draw is one validated draw command together with the arrays that were
// current when it appeared in the script.
type Draw struct {
	Line      int
	Mode      DrawMode
	First     int // DrawArrays only
	Count     int
	Offset    int // DrawElements only
	Positions *raster.VertexArray
	Colors    *raster.VertexArray
	Elements  []int
}

// Triangles returns the number of triangles the draw produces.
func (d *Draw) Triangles() int { return d.Count / 3 }

// Script is a parsed scene.
type Script struct {
	Width   int
	Height  int
	Output  string // file name from the png directive
	Options raster.Options
	Draws   []Draw
}

// Render allocates the image and runs every draw command.
func (s *Script) Render() (*raster.FrameBuffer, error) {
	if s.Width <= 0 || s.Height <= 0 || s.Width > MaxDimension || s.Height > MaxDimension {
		return nil, &ConfigError{Keyword: "png", Msg: fmt.Sprintf("bad image size %dx%d", s.Width, s.Height)}
	}

	fb := raster.NewFrameBuffer(s.Width, s.Height)
	r := raster.NewRasterizer(fb, s.Options)
	log := logging.Logger()

	for i := range s.Draws {
		d := &s.Draws[i]
		var err error
		switch d.Mode {
		case DrawArrays:
			err = r.DrawArraysTriangles(d.First, d.Count, d.Positions, d.Colors)
		case DrawElements:
			err = r.DrawElementsTriangles(d.Count, d.Offset, d.Elements, d.Positions, d.Colors)
		default:
			err = fmt.Errorf("unknown draw mode %v", d.Mode)
		}
		if err != nil {
			return nil, fmt.Errorf("scene: line %d: %w", d.Line, err)
		}
		log.Debug("draw", "line", d.Line, "mode", d.Mode, "triangles", d.Triangles())
	}
	return fb, nil
}
