//go:build windows

package settingsservice

import "golang.design/x/hotkey"

var modMap = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.ModAlt,
	"win":   hotkey.ModWin,
	"super": hotkey.ModWin,
}

var revModMap = map[hotkey.Modifier]string{
	hotkey.ModCtrl:  "ctrl",
	hotkey.ModShift: "shift",
	hotkey.ModAlt:   "alt",
	hotkey.ModWin:   "win",
}
