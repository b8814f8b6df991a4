//go:build linux

package settingsservice

import "golang.design/x/hotkey"

var modMap = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.Mod1,
	"super": hotkey.Mod4,
}

var revModMap = map[hotkey.Modifier]string{
	hotkey.ModCtrl:  "ctrl",
	hotkey.ModShift: "shift",
	hotkey.Mod1:     "alt",
	hotkey.Mod4:     "super",
}
