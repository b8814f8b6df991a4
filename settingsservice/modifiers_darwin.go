//go:build darwin

package settingsservice

import "golang.design/x/hotkey"

var modMap = map[string]hotkey.Modifier{
	"ctrl":   hotkey.ModCtrl,
	"shift":  hotkey.ModShift,
	"option": hotkey.ModOption,
	"alt":    hotkey.ModOption,
	"cmd":    hotkey.ModCmd,
}

var revModMap = map[hotkey.Modifier]string{
	hotkey.ModCtrl:   "ctrl",
	hotkey.ModShift:  "shift",
	hotkey.ModOption: "option",
	hotkey.ModCmd:    "cmd",
}
