// Package main provides the entry point for the Pixel Viewer application.
package main

import (
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"pixel-viewer/internal/app"
	"pixel-viewer/internal/imageio"
	"pixel-viewer/internal/version"
	"pixel-viewer/ui/mainwindow"
	"pixel-viewer/ui/prefs"
)

const appTitle = "Pixel Viewer"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("pixel-viewer")
	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Image paths on the command line are opened at startup.
	for _, path := range os.Args[1:] {
		if !imageio.IsSupported(path) {
			log.Printf("Skipping unsupported file %s", path)
			continue
		}
		if err := win.OpenImage(path); err != nil {
			log.Printf("Failed to open %s: %v", path, err)
		}
	}

	win.ShowAndRun()
}
