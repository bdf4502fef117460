package raster

import "testing"

func TestNewEdge(t *testing.T) {
	a := Vertex{X: 1, Y: 0.5, Z: 0, W: 1, R: 0, G: 0, B: 0, A: 1}
	b := Vertex{X: 5, Y: 4.5, Z: 1, W: 1, R: 1, G: 0, B: 0, A: 1}

	for _, order := range [][2]Vertex{{a, b}, {b, a}} {
		e, ok := newEdge(order[0], order[1], false)
		if !ok {
			t.Fatal("edge should be valid")
		}
		if e.step.Y != 1 || e.step.X != 1 || e.step.Z != 0.25 || e.step.R != 0.25 {
			t.Errorf("step = %+v", e.step)
		}
		// First sample sits on row 1, half a row below a.
		if e.cur.Y != 1 || e.cur.X != 1.5 || e.cur.R != 0.125 {
			t.Errorf("start = %+v", e.cur)
		}
	}
}

func TestNewEdgeDegenerate(t *testing.T) {
	a := Vertex{X: 0, Y: 2}
	b := Vertex{X: 5, Y: 2}
	if _, ok := newEdge(a, b, false); ok {
		t.Error("horizontal edge must be rejected")
	}
}

func TestNewEdgePremultiplies(t *testing.T) {
	a := Vertex{Y: 0, W: 1, R: 1, A: 1}
	b := Vertex{Y: 2, W: 0.5, R: 1, A: 1}
	e, ok := newEdge(a, b, true)
	if !ok {
		t.Fatal("edge should be valid")
	}
	// R goes from 1*1 to 1*0.5 over two rows; W is never premultiplied.
	if e.step.R != -0.25 || e.step.W != -0.25 || e.cur.R != 1 || e.cur.W != 1 {
		t.Errorf("edge = %+v", e)
	}
}

func TestEdgeJump(t *testing.T) {
	e, _ := newEdge(Vertex{X: 0, Y: -10}, Vertex{X: 20, Y: 10}, false)
	e.jump(10)
	if e.cur.Y != 0 || e.cur.X != 10 {
		t.Errorf("after jump: %+v", e.cur)
	}
}
