//go:build darwin

package host

import (
	"golang.design/x/hotkey"

	"github.com/onyx-dot-app/onyx-desktop/shell"
)

// Carbon virtual key codes for keys the hotkey package has no named
// constant for.
const (
	vkANSIComma        hotkey.Key = 0x2B
	vkANSILeftBracket  hotkey.Key = 0x21
	vkANSIRightBracket hotkey.Key = 0x1E
)

func platformModifiers(mods shell.ModMask) []hotkey.Modifier {
	var out []hotkey.Modifier
	if mods&shell.ModSuper != 0 {
		out = append(out, hotkey.ModCmd)
	}
	if mods&shell.ModCtrl != 0 {
		out = append(out, hotkey.ModCtrl)
	}
	if mods&shell.ModAlt != 0 {
		out = append(out, hotkey.ModOption)
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
		return vkANSIComma, true
	case shell.KeyBracketLeft:
		return vkANSILeftBracket, true
	case shell.KeyBracketRight:
		return vkANSIRightBracket, true
	}
	return 0, false
}
