package html

import (
	"strings"
	"testing"
)

func TestParse_BuildsElementTree(t *testing.T) {
	input := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta name="viewport" content="width=640, height=480">
  <title>Tooltip</title>
</head>
<body class="page">
  <div id="toolbar" style="position: absolute; left: 10px; top: 10px; width: 100px; height: 20px">
    <span id="label">Hello</span>
  </div>
  <!-- comment -->
  <div id="tip" data-placement="top"></div>
</body>
</html>`

	page, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	doc := page.Document

	if doc.Window().InnerWidth() != 640 || doc.Window().InnerHeight() != 480 {
		t.Errorf("Expected 640x480 viewport, got %vx%v", doc.Window().InnerWidth(), doc.Window().InnerHeight())
	}
	if doc.DocumentElement().GetAttribute("lang") != "en" {
		t.Error("Expected html attributes to be copied")
	}
	if doc.Body().GetAttribute("class") != "page" {
		t.Error("Expected body attributes to be copied")
	}

	toolbar := doc.GetElementByID("toolbar")
	if toolbar == nil {
		t.Fatal("Expected #toolbar")
	}
	if got := toolbar.Style().GetPropertyValue("left"); got != "10px" {
		t.Errorf("Expected inline style to be parsed, got left=%q", got)
	}
	label := doc.GetElementByID("label")
	if label == nil || label.Parent() != toolbar {
		t.Error("Expected #label to be a child of #toolbar")
	}
	if len(doc.Body().Children()) != 2 {
		t.Errorf("Expected 2 body children, got %d", len(doc.Body().Children()))
	}
	if v, ok := doc.GetElementByID("tip").Data("placement"); !ok || v != "top" {
		t.Errorf("Expected data-placement=top, got %q", v)
	}
}

func TestParseReader_DefaultViewport(t *testing.T) {
	page, err := ParseReader(strings.NewReader(`<div id="a"></div>`))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	w := page.Document.Window()
	if w.InnerWidth() != DefaultViewportWidth || w.InnerHeight() != DefaultViewportHeight {
		t.Errorf("Expected default viewport, got %vx%v", w.InnerWidth(), w.InnerHeight())
	}
	if page.Document.GetElementByID("a") == nil {
		t.Error("Expected #a in the implied body")
	}
}

func TestParse_CollectsScripts(t *testing.T) {
	page, err := Parse(`<html><head><script>var a = 1;</script></head>
<body><div id="x"></div><script>var b = 2;</script></body></html>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(page.Scripts) != 2 {
		t.Fatalf("Expected 2 scripts, got %d", len(page.Scripts))
	}
	if page.Scripts[0].Code != "var a = 1;" || page.Scripts[1].Name != "script[1]" {
		t.Errorf("Unexpected scripts %+v", page.Scripts)
	}
	for _, el := range page.Document.Body().Children() {
		if el.TagName() == "script" {
			t.Error("Scripts should not become elements")
		}
	}
}

func TestParse_ExternalScripts(t *testing.T) {
	page, err := Parse(`<body><script src="lib/popper.js"></script><script>run();</script></body>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(page.Scripts) != 2 {
		t.Fatalf("Expected 2 scripts, got %d", len(page.Scripts))
	}
	if page.Scripts[0].Src != "lib/popper.js" || page.Scripts[0].Code != "" {
		t.Errorf("Unexpected external script %+v", page.Scripts[0])
	}
	if page.Scripts[1].Src != "" || page.Scripts[1].Code != "run();" {
		t.Errorf("Unexpected inline script %+v", page.Scripts[1])
	}
}

func TestParseViewport(t *testing.T) {
	tests := []struct {
		content string
		w, h    float64
	}{
		{"width=800, height=600", 800, 600},
		{"width = 320; initial-scale=1", 320, 0},
		{"width=device-width", 0, 0},
		{"", 0, 0},
	}
	for _, tt := range tests {
		w, h := ParseViewport(tt.content)
		if w != tt.w || h != tt.h {
			t.Errorf("ParseViewport(%q) = %v, %v; want %v, %v", tt.content, w, h, tt.w, tt.h)
		}
	}
}
