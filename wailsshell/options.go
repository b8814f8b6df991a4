package wailsshell

import (
	"math"

	"github.com/imjamesonzeller/stickynotes/windows"
	"github.com/wailsapp/wails/v3/pkg/application"
)

// webviewOptions maps platform-neutral window options onto Wails'.
func webviewOptions(opts windows.NativeOptions) application.WebviewWindowOptions {
	wo := application.WebviewWindowOptions{
		Name:          opts.Label,
		Title:         opts.Title,
		URL:           opts.URL,
		Width:         pixels(opts.Size.Width),
		Height:        pixels(opts.Size.Height),
		MinWidth:      pixels(opts.MinSize.Width),
		MinHeight:     pixels(opts.MinSize.Height),
		AlwaysOnTop:   opts.AlwaysOnTop,
		DisableResize: !opts.Resizable,
	}

	if opts.MaxSize != nil {
		wo.MaxWidth = pixels(opts.MaxSize.Width)
		wo.MaxHeight = pixels(opts.MaxSize.Height)
	}

	if opts.Centered {
		wo.InitialPosition = application.WindowCentered
	} else {
		wo.InitialPosition = application.WindowXY
		wo.X = pixels(opts.Position.X)
		wo.Y = pixels(opts.Position.Y)
	}

	if opts.Titlebar == windows.TitlebarOverlay {
		wo.Mac = application.MacWindow{
			TitleBar: application.MacTitleBar{
				AppearsTransparent: true,
				HideTitle:          opts.HiddenTitle,
				FullSizeContent:    true,
			},
		}
	}

	return wo
}

// pixels rounds a logical coordinate. Wails treats 0 as "no limit", which is
// also what an unbounded axis becomes.
func pixels(v float64) int {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return int(math.Round(v))
}
