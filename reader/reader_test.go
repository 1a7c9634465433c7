package reader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pagelayout/graphicsstate"
	"github.com/tsawler/pagelayout/internal/testpdf"
	"github.com/tsawler/pagelayout/model"
	"github.com/tsawler/pagelayout/tables"
)

var letter = graphicsstate.Rect{Max: graphicsstate.Point{X: 612, Y: 792}}

func openBytes(t *testing.T, data []byte) *Reader {
	t.Helper()

	r, err := NewReader(bytes.NewReader(data), int64(len(data)), DefaultOptions())
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pdf"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if errors.Is(err, ErrDecode) {
		t.Errorf("Missing file should not be a decode error: %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestOpen_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Expected ErrDecode, got %v", err)
	}
}

func TestReader_PageCount(t *testing.T) {
	r := openBytes(t, testpdf.Build(testpdf.Page{}, testpdf.Page{}, testpdf.Page{}))
	if r.PageCount() != 3 {
		t.Errorf("Expected 3 pages, got %d", r.PageCount())
	}
}

func TestReader_PageRange(t *testing.T) {
	r := openBytes(t, testpdf.Build(testpdf.Page{}))

	for _, n := range []int{0, -1, 2} {
		if _, err := r.Page(n); !errors.Is(err, ErrPageRange) {
			t.Errorf("Page(%d): expected ErrPageRange, got %v", n, err)
		}
	}
}

func TestReader_Page(t *testing.T) {
	content := testpdf.Text("Hello", 100, 700, 24) +
		testpdf.Box(50, 100, 200, 100) +
		testpdf.Image(300, 300, 100, 50)

	r := openBytes(t, testpdf.Build(testpdf.Page{Content: content}))

	page, err := r.Page(1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	if page.Width != 612 || page.Height != 792 {
		t.Errorf("Expected inherited 612x792, got %vx%v", page.Width, page.Height)
	}

	if len(page.Glyphs) != 5 {
		t.Fatalf("Expected 5 glyphs, got %d", len(page.Glyphs))
	}
	var text string
	for _, g := range page.Glyphs {
		text += g.Text
	}
	if text != "Hello" {
		t.Errorf("Expected text Hello, got %q", text)
	}

	first := page.Glyphs[0]
	if first.X0 != 100 || first.Top != 68 || first.Bottom != 92 {
		t.Errorf("Unexpected first glyph box %+v", first.BBox())
	}
	if first.Size != 24 || first.FontName != "Helvetica" {
		t.Errorf("Unexpected typography %q %v", first.FontName, first.Size)
	}

	if len(page.Images) != 1 {
		t.Fatalf("Expected 1 image, got %d", len(page.Images))
	}
	if page.Images[0] != model.NewBBox(300, 442, 400, 492) {
		t.Errorf("Unexpected image bbox %+v", page.Images[0])
	}

	if len(page.Tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(page.Tables))
	}
	if len(page.Tables[0]) != 1 || len(page.Tables[0][0]) != 1 || page.Tables[0][0][0] != "" {
		t.Errorf("Expected a single empty cell, got %q", page.Tables[0])
	}
}

func TestReader_OwnMediaBox(t *testing.T) {
	r := openBytes(t, testpdf.Build(testpdf.Page{MediaBox: "0 0 300 400"}))

	page, err := r.Page(1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if page.Width != 300 || page.Height != 400 {
		t.Errorf("Expected 300x400, got %vx%v", page.Width, page.Height)
	}
}

func TestReader_TableCellText(t *testing.T) {
	content := testpdf.Box(50, 500, 200, 100) + testpdf.Text("Cell", 60, 550, 10)

	r := openBytes(t, testpdf.Build(testpdf.Page{Content: content}))
	page, err := r.Page(1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if len(page.Tables) != 1 || page.Tables[0][0][0] != "Cell" {
		t.Errorf("Expected cell text 'Cell', got %q", page.Tables)
	}
}

func TestReader_DisabledExtras(t *testing.T) {
	content := testpdf.Box(50, 100, 200, 100) + testpdf.Image(300, 300, 100, 50)
	data := testpdf.Build(testpdf.Page{Content: content})

	opts := DefaultOptions()
	opts.Tables = false
	opts.Images = false

	r, err := NewReader(bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		t.Fatal(err)
	}
	page, err := r.Page(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Tables) != 0 || len(page.Images) != 0 {
		t.Errorf("Expected no tables or images, got %d/%d", len(page.Tables), len(page.Images))
	}
}

func TestReader_OpenFile(t *testing.T) {
	path, err := testpdf.Write(t.TempDir(), "doc.pdf", testpdf.Page{Content: testpdf.Text("x", 10, 10, 10)})
	if err != nil {
		t.Fatal(err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if r.PageCount() != 1 {
		t.Errorf("Expected 1 page, got %d", r.PageCount())
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Second Close failed: %v", err)
	}
}

func TestReader_MissingXObjectWarns(t *testing.T) {
	r := openBytes(t, testpdf.Build(testpdf.Page{Content: "/Missing Do\n" + testpdf.Text("ok", 10, 10, 10)}))

	page, err := r.Page(1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if len(page.Glyphs) != 2 {
		t.Errorf("Expected text to survive, got %d glyphs", len(page.Glyphs))
	}
	if len(r.Warnings()) != 1 || r.Warnings()[0].Page != 1 {
		t.Errorf("Expected one page 1 warning, got %v", r.Warnings())
	}
}

func TestConvertText(t *testing.T) {
	box := graphicsstate.Rect{
		Min: graphicsstate.Point{X: 10, Y: 20},
		Max: graphicsstate.Point{X: 610, Y: 820},
	}
	texts := []pdf.Text{
		{Font: "Times-Bold", FontSize: 12, X: 110, Y: 720, W: 6, S: "A"},
		{Font: "Times-Bold", FontSize: 12, X: 116, Y: 720, W: 6, S: "\n"},
		{Font: "Times-Bold", FontSize: 12, X: 116, Y: 720, W: 6, S: "e\u0301"},
	}

	glyphs := convertText(texts, box)
	if len(glyphs) != 2 {
		t.Fatalf("Expected 2 glyphs, got %d", len(glyphs))
	}

	want := model.Glyph{Text: "A", X0: 100, Top: 88, X1: 106, Bottom: 100, FontName: "Times-Bold", Size: 12}
	if glyphs[0] != want {
		t.Errorf("Expected %+v, got %+v", want, glyphs[0])
	}
	if glyphs[1].Text != "\u00e9" {
		t.Errorf("Expected NFC composed text, got %q", glyphs[1].Text)
	}
}

func TestToTopDown(t *testing.T) {
	r := graphicsstate.Rect{
		Min: graphicsstate.Point{X: 100, Y: 300},
		Max: graphicsstate.Point{X: 200, Y: 350},
	}
	if got := toTopDown(r, letter); got != model.NewBBox(100, 442, 200, 492) {
		t.Errorf("Unexpected box %+v", got)
	}
}

func TestConvertRulings(t *testing.T) {
	grid := graphicsstate.GridLines{
		Horizontals: []graphicsstate.ExtractedLine{
			{Start: graphicsstate.Point{X: 250, Y: 100}, End: graphicsstate.Point{X: 50, Y: 100}, IsHorizontal: true},
		},
		Verticals: []graphicsstate.ExtractedLine{
			{Start: graphicsstate.Point{X: 50, Y: 100}, End: graphicsstate.Point{X: 50, Y: 200}, IsVertical: true},
		},
	}

	rulings := convertRulings(grid, letter)
	if len(rulings) != 2 {
		t.Fatalf("Expected 2 rulings, got %d", len(rulings))
	}

	h := rulings[0]
	if h.Orientation != tables.Horizontal || h.Position != 692 || h.Start != 50 || h.End != 250 {
		t.Errorf("Unexpected horizontal ruling %s", h)
	}
	v := rulings[1]
	if v.Orientation != tables.Vertical || v.Position != 50 || v.Start != 592 || v.End != 692 {
		t.Errorf("Unexpected vertical ruling %s", v)
	}
}

func TestWarningString(t *testing.T) {
	if got := (Warning{Page: 3, Message: "bad"}).String(); got != "page 3: bad" {
		t.Errorf("Unexpected %q", got)
	}
	if got := (Warning{Message: "bad"}).String(); got != "bad" {
		t.Errorf("Unexpected %q", got)
	}
}
