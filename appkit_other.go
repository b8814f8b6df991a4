//go:build !darwin

package main

// Dock visibility and app activation are AppKit concepts; other platforms
// show and raise the window through Wails alone.

func hideAppFromDock() {}

func focusAppWindow() {}
