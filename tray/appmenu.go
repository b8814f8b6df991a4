package tray

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/wailsapp/wails/v3/pkg/application"
)

const (
	QuitAccelerator    = "CmdOrCtrl+Q"
	NewNoteAccelerator = "CmdOrCtrl+N"
	appTitle           = "Sticky Notes"
)

// menuEntry describes one menu item, role or submenu before it is handed to
// Wails.
type menuEntry struct {
	label     string
	accel     string
	role      application.Role
	isRole    bool
	separator bool
	onClick   func()
	submenu   []menuEntry
}

func item(label, accel string, onClick func()) menuEntry {
	return menuEntry{label: label, accel: accel, onClick: onClick}
}

func role(r application.Role) menuEntry {
	return menuEntry{role: r, isRole: true}
}

func submenu(label string, entries ...menuEntry) menuEntry {
	return menuEntry{label: label, submenu: entries}
}

var separator = menuEntry{separator: true}

// AppMenu installs the application menu bar once the app is running.
type AppMenu struct {
	app     *application.App
	actions WindowActions
	goos    string
}

func NewAppMenu(app *application.App, actions WindowActions) *AppMenu {
	return &AppMenu{app: app, actions: actions, goos: runtime.GOOS}
}

func (m *AppMenu) newNote() {
	if err := m.actions.NewNote(); err != nil && m.app != nil {
		m.app.Logger.Warn("menu: failed to open note window", "error", err)
	}
}

func (m *AppMenu) quit() {
	go m.actions.QuitAll()
}

// entries lays out the menu bar. Quit is always our own item: the stock
// Quit role ends the process without a close request reaching any window.
func (m *AppMenu) entries() []menuEntry {
	quit := item("Quit "+appTitle, QuitAccelerator, m.quit)
	newNote := item("New Note", NewNoteAccelerator, m.newNote)

	if m.goos != "darwin" {
		return []menuEntry{
			submenu("File", newNote, separator, quit),
			role(application.EditMenu),
		}
	}

	return []menuEntry{
		submenu(appTitle,
			role(application.About),
			separator,
			role(application.ServicesMenu),
			separator,
			role(application.Hide),
			role(application.HideOthers),
			role(application.UnHide),
			separator,
			quit,
		),
		submenu("File", newNote),
		role(application.EditMenu),
		submenu("Window",
			role(application.Minimise),
			role(application.Zoom),
			separator,
			role(application.CloseWindow),
		),
	}
}

func (m *AppMenu) BuildMenu() (err error) {
	if m.app == nil {
		return errors.New("application not initialised")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("build menu: %v", r)
		}
	}()

	menu := application.NewMenu()
	render(menu, m.entries())
	m.app.SetMenu(menu)
	return nil
}

func render(menu *application.Menu, entries []menuEntry) {
	for _, e := range entries {
		switch {
		case e.separator:
			menu.AddSeparator()
		case e.isRole:
			menu.AddRole(e.role)
		case e.submenu != nil:
			render(menu.AddSubmenu(e.label), e.submenu)
		default:
			mi := menu.Add(e.label)
			if e.accel != "" {
				mi.SetAccelerator(e.accel)
			}
			if e.onClick != nil {
				onClick := e.onClick
				mi.OnClick(func(_ *application.Context) { onClick() })
			}
		}
	}
}
