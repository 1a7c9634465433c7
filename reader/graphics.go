package reader

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pagelayout/graphicsstate"
	"github.com/tsawler/pagelayout/tables"
)

// scanner replays a page's content streams through a graphics extractor
type scanner struct {
	ge       *graphicsstate.GraphicsExtractor
	reader   *Reader
	page     int
	maxDepth int
	warned   int
}

// scanGraphics collects painted paths and image placements for a page. A
// panic while decoding graphics is recorded as a warning; whatever was
// collected before it is kept.
func (r *Reader) scanGraphics(page pdf.Page, number int) *scanner {
	s := &scanner{
		ge:       graphicsstate.NewGraphicsExtractor(),
		reader:   r,
		page:     number,
		maxDepth: r.options.MaxFormDepth,
	}

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				s.warn("graphics decoding stopped: %v", rec)
			}
		}()
		s.run(page.V.Key("Contents"), page.V.Key("Resources"), 0)
	}()

	return s
}

func (s *scanner) warn(format string, args ...interface{}) {
	limit := s.reader.options.MaxWarnings
	if limit > 0 && s.warned >= limit {
		return
	}
	s.warned++
	s.reader.warnings = append(s.reader.warnings, Warning{
		Page:    s.page,
		Message: fmt.Sprintf(format, args...),
	})
}

// run interprets a content stream, or each stream of an array
func (s *scanner) run(strm, resources pdf.Value, depth int) {
	switch strm.Kind() {
	case pdf.Array:
		for i := 0; i < strm.Len(); i++ {
			s.run(strm.Index(i), resources, depth)
		}
		return
	case pdf.Stream:
	default:
		return
	}

	pdf.Interpret(strm, func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]pdf.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}

		if op == "Do" {
			if n == 1 && args[0].Kind() == pdf.Name {
				s.paintXObject(args[0].Name(), resources, depth)
			}
			return
		}

		if !graphicsstate.Handles(op) {
			return
		}

		operands, ok := numbers(args)
		if !ok {
			s.warn("operator %s: non-numeric operand", op)
			return
		}
		if err := s.ge.Apply(op, operands); err != nil {
			s.warn("%v", err)
		}
	})
}

// paintXObject handles the Do operator. Images record their placement;
// forms are replayed with their own matrix and resources.
func (s *scanner) paintXObject(name string, resources pdf.Value, depth int) {
	xobj := resources.Key("XObject").Key(name)
	if xobj.IsNull() {
		s.warn("XObject %s not found", name)
		return
	}

	switch xobj.Key("Subtype").Name() {
	case "Image":
		if s.reader.options.Images {
			s.ge.PaintImage()
		}
	case "Form":
		if depth >= s.maxDepth {
			s.warn("form XObject %s nested deeper than %d", name, s.maxDepth)
			return
		}

		formResources := xobj.Key("Resources")
		if formResources.IsNull() {
			formResources = resources
		}

		gs := s.ge.GetGraphicsState()
		before := gs.Depth()
		s.ge.BeginForm(matrixValue(xobj.Key("Matrix")))
		s.run(xobj, formResources, depth+1)

		// Unbalanced q inside the form must not leak out of it
		for gs.Depth() > before+1 {
			if err := gs.Restore(); err != nil {
				break
			}
		}
		if err := s.ge.EndForm(); err != nil {
			s.warn("form XObject %s: %v", name, err)
		}
	}
}

// numbers converts numeric operands to float64
func numbers(args []pdf.Value) ([]float64, bool) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, ok := number(a)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// matrixValue reads a six number array, defaulting to identity
func matrixValue(v pdf.Value) graphicsstate.Matrix {
	if v.Kind() != pdf.Array || v.Len() != 6 {
		return graphicsstate.Identity()
	}

	var m graphicsstate.Matrix
	for i := range m {
		f, ok := number(v.Index(i))
		if !ok {
			return graphicsstate.Identity()
		}
		m[i] = f
	}
	return m
}

// convertRulings turns device space grid lines into top-down rulings
// relative to the page box
func convertRulings(grid graphicsstate.GridLines, box graphicsstate.Rect) []tables.Ruling {
	rulings := make([]tables.Ruling, 0, len(grid.Horizontals)+len(grid.Verticals))

	for _, l := range grid.Horizontals {
		y := box.Max.Y - (l.Start.Y+l.End.Y)/2
		rulings = append(rulings, tables.NewHorizontalRuling(y, l.Start.X-box.Min.X, l.End.X-box.Min.X))
	}
	for _, l := range grid.Verticals {
		x := (l.Start.X+l.End.X)/2 - box.Min.X
		rulings = append(rulings, tables.NewVerticalRuling(x, box.Max.Y-l.Start.Y, box.Max.Y-l.End.Y))
	}

	return rulings
}
