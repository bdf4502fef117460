package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"trirast/internal/logging"
	"trirast/internal/raster"
)

// ParseFile reads and validates the scene script at path.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse reads a scene script. Malformed input is reported as *ConfigError.
func Parse(r io.Reader) (*Script, error) {
	p := &parser{script: &Script{}}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for sc.Scan() {
		p.line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := p.directive(fields[0], fields[1:]); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scene: read: %w", err)
	}

	if !p.sawPNG {
		return nil, &ConfigError{Keyword: "png", Msg: "missing png directive"}
	}
	return p.script, nil
}

type parser struct {
	script   *Script
	line     int
	sawPNG   bool
	sawDraw  bool
	pos      *raster.VertexArray
	col      *raster.VertexArray
	elements []int
}

func (p *parser) errorf(kw, format string, args ...any) error {
	return &ConfigError{Line: p.line, Keyword: kw, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) directive(kw string, args []string) error {
	switch kw {
	case "png":
		return p.png(kw, args)
	case "position":
		a, err := p.array(kw, args, 2, 4)
		if err != nil {
			return err
		}
		p.pos = a
	case "color":
		a, err := p.array(kw, args, 3, 4)
		if err != nil {
			return err
		}
		p.col = a
	case "elements":
		idx, err := p.ints(kw, args)
		if err != nil {
			return err
		}
		for _, i := range idx {
			if i < 0 {
				return p.errorf(kw, "negative index %d", i)
			}
		}
		p.elements = idx
	case "drawArraysTriangles":
		return p.drawArrays(kw, args)
	case "drawElementsTriangles":
		return p.drawElements(kw, args)
	case "depth", "sRGB", "hyp":
		return p.flag(kw)
	case "drawPixels":
		logging.Logger().Debug("ignoring directive", "line", p.line, "keyword", kw)
	default:
		logging.Logger().Debug("unknown directive", "line", p.line, "keyword", kw)
	}
	return nil
}

func (p *parser) png(kw string, args []string) error {
	if p.sawPNG {
		return p.errorf(kw, "duplicate png directive")
	}
	if len(args) != 3 {
		return p.errorf(kw, "want width, height and file name, got %d arguments", len(args))
	}
	w, err := p.dimension(kw, args[0])
	if err != nil {
		return err
	}
	h, err := p.dimension(kw, args[1])
	if err != nil {
		return err
	}
	p.script.Width = w
	p.script.Height = h
	p.script.Output = args[2]
	p.sawPNG = true
	return nil
}

func (p *parser) dimension(kw, tok string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, p.errorf(kw, "dimension %q is not an integer", tok)
	}
	if n <= 0 || n > MaxDimension {
		return 0, p.errorf(kw, "dimension %d outside [1,%d]", n, MaxDimension)
	}
	return n, nil
}

func (p *parser) array(kw string, args []string, minSize, maxSize int) (*raster.VertexArray, error) {
	if len(args) == 0 {
		return nil, p.errorf(kw, "missing component count")
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, p.errorf(kw, "component count %q is not an integer", args[0])
	}
	if size < minSize || size > maxSize {
		return nil, p.errorf(kw, "component count %d outside [%d,%d]", size, minSize, maxSize)
	}

	data := make([]float64, len(args)-1)
	for i, tok := range args[1:] {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, p.errorf(kw, "value %q is not a number", tok)
		}
		data[i] = v
	}
	if len(data)%size != 0 {
		return nil, p.errorf(kw, "%d values is not a multiple of %d components", len(data), size)
	}
	return &raster.VertexArray{Size: size, Data: data}, nil
}

func (p *parser) ints(kw string, args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, tok := range args {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, p.errorf(kw, "%q is not an integer", tok)
		}
		out[i] = n
	}
	return out, nil
}

// drawable checks the state shared by both draw directives and returns how
// many vertices the current arrays can supply.
func (p *parser) drawable(kw string) (int, error) {
	if !p.sawPNG {
		return 0, p.errorf(kw, "draw before png directive")
	}
	if p.pos == nil {
		return 0, p.errorf(kw, "no position array")
	}
	if p.col == nil {
		return 0, p.errorf(kw, "no color array")
	}
	return min(p.pos.Len(), p.col.Len()), nil
}

func (p *parser) drawArrays(kw string, args []string) error {
	n, err := p.drawable(kw)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return p.errorf(kw, "want first and count, got %d arguments", len(args))
	}
	v, err := p.ints(kw, args)
	if err != nil {
		return err
	}
	first, count := v[0], v[1]
	if first < 0 || count < 0 || count%3 != 0 {
		return p.errorf(kw, "count %d must be a non-negative multiple of 3 and first %d non-negative", count, first)
	}
	if first > n || count > n-first {
		return p.errorf(kw, "%d vertices from %d exceed the %d available", count, first, n)
	}

	p.script.Draws = append(p.script.Draws, Draw{
		Line:      p.line,
		Mode:      DrawArrays,
		First:     first,
		Count:     count,
		Positions: p.pos,
		Colors:    p.col,
	})
	p.sawDraw = true
	return nil
}

func (p *parser) drawElements(kw string, args []string) error {
	n, err := p.drawable(kw)
	if err != nil {
		return err
	}
	if p.elements == nil {
		return p.errorf(kw, "no elements array")
	}
	if len(args) != 2 {
		return p.errorf(kw, "want count and offset, got %d arguments", len(args))
	}
	v, err := p.ints(kw, args)
	if err != nil {
		return err
	}
	count, offset := v[0], v[1]
	if offset < 0 || count < 0 || count%3 != 0 {
		return p.errorf(kw, "count %d must be a non-negative multiple of 3 and offset %d non-negative", count, offset)
	}
	if offset > len(p.elements) || count > len(p.elements)-offset {
		return p.errorf(kw, "%d elements from %d exceed the %d available", count, offset, len(p.elements))
	}
	for _, idx := range p.elements[offset : offset+count] {
		if idx >= n {
			return p.errorf(kw, "index %d exceeds the %d vertices available", idx, n)
		}
	}

	p.script.Draws = append(p.script.Draws, Draw{
		Line:      p.line,
		Mode:      DrawElements,
		Count:     count,
		Offset:    offset,
		Positions: p.pos,
		Colors:    p.col,
		Elements:  p.elements,
	})
	p.sawDraw = true
	return nil
}

func (p *parser) flag(kw string) error {
	if p.sawDraw {
		return p.errorf(kw, "pipeline flags must come before the first draw")
	}
	o := &p.script.Options
	switch kw {
	case "depth":
		o.Depth = true
	case "sRGB":
		o.SRGB = true
	case "hyp":
		o.Hyp = true
	}
	*o = o.Normalize()
	return nil
}
