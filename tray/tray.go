package tray

import (
	"github.com/wailsapp/wails/v3/pkg/application"
)

type WindowActions interface {
	NewNote() error
	QuitAll()
}

func Setup(app *application.App, actions WindowActions, trayIcon []byte) {
	tray := app.NewSystemTray()
	menu := application.NewMenu()

	// ------ ITEMS ------
	menu.Add("New Note").OnClick(func(_ *application.Context) {
		if err := actions.NewNote(); err != nil {
			app.Logger.Warn("tray: failed to open note window", "error", err)
		}
	})
	menu.AddSeparator()
	menu.Add("Quit").OnClick(func(_ *application.Context) {
		go actions.QuitAll()
	})

	tray.SetMenu(menu)
	tray.SetIcon(trayIcon)
}
