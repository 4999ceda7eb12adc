package factory

import (
	"errors"
	"os"
	"os/exec"
)

// ErrBrowserNotFound is returned when no executable is known for a kind.
var ErrBrowserNotFound = errors.New("browser executable not found")

var edgePaths = []string{
	"/usr/bin/microsoft-edge",
	"/usr/bin/microsoft-edge-stable",
	"/opt/microsoft/msedge/msedge",
	"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
	`C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`,
	`C:\Program Files\Microsoft\Edge\Application\msedge.exe`,
}

var edgeCommands = []string{"microsoft-edge", "microsoft-edge-stable", "msedge"}

// Overridden in tests.
var (
	statFile = os.Stat
	lookPath = exec.LookPath
)

// findEdgeBinary looks in the usual install locations, then on PATH.
func findEdgeBinary() (string, error) {
	for _, path := range edgePaths {
		if _, err := statFile(path); err == nil {
			return path, nil
		}
	}

	for _, cmd := range edgeCommands {
		if path, err := lookPath(cmd); err == nil {
			return path, nil
		}
	}

	return "", ErrBrowserNotFound
}
