//go:build linux

package host

import (
	"golang.design/x/hotkey"

	"github.com/onyx-dot-app/onyx-desktop/shell"
)

// X11 keysyms for keys the hotkey package has no named constant for.
const (
	xkComma        hotkey.Key = 0x002c
	xkBracketLeft  hotkey.Key = 0x005b
	xkBracketRight hotkey.Key = 0x005d
)

func platformModifiers(mods shell.ModMask) []hotkey.Modifier {
	var out []hotkey.Modifier
	if mods&shell.ModSuper != 0 {
		out = append(out, hotkey.Mod4)
	}
	if mods&shell.ModCtrl != 0 {
		out = append(out, hotkey.ModCtrl)
	}
	if mods&shell.ModAlt != 0 {
		out = append(out, hotkey.Mod1)
	}
	if mods&shell.ModShift != 0 {
		out = append(out, hotkey.ModShift)
	}
	return out
}

func platformKey(k shell.Key) (hotkey.Key, bool) {
	switch k {
	case shell.KeyN:
		return hotkey.KeyN, true
	case shell.KeyR:
		return hotkey.KeyR, true
	case shell.KeySpace:
		return hotkey.KeySpace, true
	case shell.KeyComma:
		return xkComma, true
	case shell.KeyBracketLeft:
		return xkBracketLeft, true
	case shell.KeyBracketRight:
		return xkBracketRight, true
	}
	return 0, false
}
