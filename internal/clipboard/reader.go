package clipboard

import (
	"os/exec"
	"runtime"
	"strings"
)

// CommandReader reads the clipboard by running an external command, the
// desktop equivalent of the mobile clipboard API.
type CommandReader struct {
	name string
	args []string
}

// NewCommandReader creates a reader for an explicit command line.
func NewCommandReader(name string, args ...string) *CommandReader {
	return &CommandReader{name: name, args: args}
}

// DetectReader finds a usable clipboard command for the current platform.
// Returns nil when none is installed, in which case clipboard ingestion is
// unavailable.
func DetectReader() *CommandReader {
	var candidates []*CommandReader
	switch runtime.GOOS {
	case "darwin":
		candidates = []*CommandReader{
			NewCommandReader("pbpaste"),
		}
	case "windows":
		candidates = []*CommandReader{
			NewCommandReader("powershell", "-NoProfile", "-Command", "Get-Clipboard"),
		}
	default:
		candidates = []*CommandReader{
			NewCommandReader("wl-paste", "--no-newline"),
			NewCommandReader("xclip", "-selection", "clipboard", "-o"),
			NewCommandReader("xsel", "--clipboard", "--output"),
		}
	}

	for _, c := range candidates {
		if _, err := exec.LookPath(c.name); err == nil {
			return c
		}
	}
	return nil
}

// Read runs the command and returns its trimmed output.
func (r *CommandReader) Read() (string, error) {
	out, err := exec.Command(r.name, r.args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), "\n"), nil
}
