package windows

// Chrome applies platform specific decoration to resolved window options.
type Chrome interface {
	Name() string
	Decorate(opts *NativeOptions, hideTitlebar bool)
}

// ChromeFor selects the strategy for the given GOOS.
func ChromeFor(goos string) Chrome {
	if goos == "darwin" {
		return macChrome{}
	}
	return plainChrome{}
}

// macChrome overlays the web content on a transparent titlebar.
type macChrome struct{}

func (macChrome) Name() string { return "mac" }

func (macChrome) Decorate(opts *NativeOptions, hideTitlebar bool) {
	if !hideTitlebar {
		return
	}
	opts.Titlebar = TitlebarOverlay
	opts.HiddenTitle = true
}

// plainChrome keeps the native titlebar everywhere else.
type plainChrome struct{}

func (plainChrome) Name() string { return "plain" }

func (plainChrome) Decorate(opts *NativeOptions, _ bool) {
	opts.Titlebar = TitlebarNative
}
