package shell

import (
	"strings"
	"testing"
)

func TestChromeScriptSeedsBridgeHandle(t *testing.T) {
	js := ChromeScript("main", "http://127.0.0.1:42000", "tok-123", false)

	for _, want := range []string{
		"bridge: 'http://127.0.0.1:42000'",
		"token: 'tok-123'",
		"window: 'main'",
		"/api/page-loaded",
		"X-Onyx-Token",
	} {
		if !strings.Contains(js, want) {
			t.Errorf("chrome script missing %q", want)
		}
	}
}

func TestChromeScriptOverlayAddsDragStrip(t *testing.T) {
	with := ChromeScript("main", "http://127.0.0.1:42000", "tok", true)
	without := ChromeScript("main", "http://127.0.0.1:42000", "tok", false)

	for _, want := range []string{"onyx-titlebar-drag", "--wails-draggable", "/api/window/drag"} {
		if !strings.Contains(with, want) {
			t.Errorf("overlay script missing %q", want)
		}
		if strings.Contains(without, want) {
			t.Errorf("plain script should not carry %q", want)
		}
	}
}

func TestChromeScriptGuardsReapplication(t *testing.T) {
	js := ChromeScript("main", "http://127.0.0.1:42000", "tok", true)

	for _, want := range []string{
		"if (!window.__ONYX_DESKTOP__)",
		"if (!document.getElementById('onyx-titlebar-drag'))",
		"if (!window.__ONYX_DESKTOP__.reported)",
	} {
		if !strings.Contains(js, want) {
			t.Errorf("chrome script missing guard %q", want)
		}
	}
}

func TestEscapeJSString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `plain`},
		{`it's`, `it\'s`},
		{`back\slash`, `back\\slash`},
		{"two\nlines", `two\nlines`},
		{`</script>`, `<\/script>`},
		{`say "hi"`, `say \"hi\"`},
	}

	for _, tt := range tests {
		if got := escapeJSString(tt.in); got != tt.want {
			t.Errorf("escapeJSString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestChromeScriptEscapesValues(t *testing.T) {
	js := ChromeScript("lab'el", "http://host/'path", "to'ken", false)

	if strings.Contains(js, "lab'el'") {
		t.Error("label must be escaped inside the script literal")
	}
	if !strings.Contains(js, `lab\'el`) {
		t.Error("escaped label missing from script")
	}
	if !strings.Contains(js, `to\'ken`) {
		t.Error("escaped token missing from script")
	}
}
