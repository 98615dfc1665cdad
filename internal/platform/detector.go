// Package platform describes how to reach the local desktop on each
// supported operating system.
package platform

import (
	"fmt"
	"runtime"
)

// Opener is the command that hands a URL to the default browser
type Opener struct {
	Command string
	Args    []string // placed before the URL
}

// URLOpener returns the browser opener for goos
func URLOpener(goos string) (Opener, error) {
	switch goos {
	case "darwin":
		return Opener{Command: "open"}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return Opener{Command: "xdg-open"}, nil
	case "windows":
		return Opener{Command: "rundll32", Args: []string{"url.dll,FileProtocolHandler"}}, nil
	default:
		return Opener{}, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Platform returns the current platform identifier
func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}
