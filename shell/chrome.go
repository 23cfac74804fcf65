// Package shell: this file renders the injected window chrome script.
package shell

import "strings"

// ChromeScript renders the script injected into every window. It seeds
// the page with the command surface handle, reports the completed page
// load back to the shell, and, where the native titlebar is hidden,
// installs a draggable strip along the top edge.
//
// The script is re-applied on a delay ladder and after hydration may
// have wiped the DOM, so every part guards itself and re-runs are
// harmless.
func ChromeScript(label, bridgeURL, token string, overlayTitlebar bool) string {
	var b strings.Builder
	b.WriteString("(function () {\n")
	b.WriteString("  if (!window.__ONYX_DESKTOP__) {\n")
	b.WriteString("    window.__ONYX_DESKTOP__ = {\n")
	b.WriteString("      bridge: '" + escapeJSString(bridgeURL) + "',\n")
	b.WriteString("      token: '" + escapeJSString(token) + "',\n")
	b.WriteString("      window: '" + escapeJSString(label) + "'\n")
	b.WriteString("    };\n")
	b.WriteString("  }\n")
	if overlayTitlebar {
		b.WriteString(dragStripJS)
	}
	b.WriteString(pageLoadedJS)
	b.WriteString("})();\n")
	return b.String()
}

// dragStripJS keeps the top edge draggable when the native titlebar is
// hidden. The strip starts past the window control cluster so those
// buttons stay clickable.
const dragStripJS = `  if (!document.getElementById('onyx-titlebar-drag')) {
    var strip = document.createElement('div');
    strip.id = 'onyx-titlebar-drag';
    strip.style.position = 'fixed';
    strip.style.top = '0';
    strip.style.left = '80px';
    strip.style.right = '0';
    strip.style.height = '28px';
    strip.style.zIndex = '2147483646';
    strip.style.background = 'transparent';
    strip.style.webkitAppRegion = 'drag';
    strip.style.setProperty('--wails-draggable', 'drag');
    strip.addEventListener('mousedown', function (e) {
      if (e.button !== 0 || e.detail >= 2) { return; }
      fetch(window.__ONYX_DESKTOP__.bridge + '/api/window/drag', {
        method: 'POST',
        headers: {
          'Content-Type': 'application/json',
          'X-Onyx-Token': window.__ONYX_DESKTOP__.token
        },
        body: JSON.stringify({ window: window.__ONYX_DESKTOP__.window })
      }).catch(function () {});
    });
    (document.body || document.documentElement).appendChild(strip);
  }
`

// pageLoadedJS reports the loaded location once per document.
const pageLoadedJS = `  if (!window.__ONYX_DESKTOP__.reported) {
    window.__ONYX_DESKTOP__.reported = true;
    try {
      fetch(window.__ONYX_DESKTOP__.bridge + '/api/page-loaded', {
        method: 'POST',
        headers: {
          'Content-Type': 'application/json',
          'X-Onyx-Token': window.__ONYX_DESKTOP__.token
        },
        body: JSON.stringify({
          window: window.__ONYX_DESKTOP__.window,
          url: window.location.href
        })
      }).catch(function () {});
    } catch (e) {}
  }
`

// escapeJSString makes s safe for embedding inside a single-quoted
// JavaScript string literal.
func escapeJSString(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"</", `<\/`,
	)
	return replacer.Replace(s)
}
