//go:build windows

package host

import (
	"golang.design/x/hotkey"

	"github.com/onyx-dot-app/onyx-desktop/shell"
)

// Win32 virtual key codes for keys the hotkey package has no named
// constant for.
const (
	vkOEMComma hotkey.Key = 0xBC
	vkOEM4     hotkey.Key = 0xDB
	vkOEM6     hotkey.Key = 0xDD
)

func platformModifiers(mods shell.ModMask) []hotkey.Modifier {
	var out []hotkey.Modifier
	if mods&shell.ModSuper != 0 {
		out = append(out, hotkey.ModWin)
	}
	if mods&shell.ModCtrl != 0 {
		out = append(out, hotkey.ModCtrl)
	}
	if mods&shell.ModAlt != 0 {
		out = append(out, hotkey.ModAlt)
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
		return vkOEMComma, true
	case shell.KeyBracketLeft:
		return vkOEM4, true
	case shell.KeyBracketRight:
		return vkOEM6, true
	}
	return 0, false
}
