package wizard

import (
	"os"
	"os/exec"
	"path/filepath"
)

// DetectionResult holds what was auto-detected on the system.
type DetectionResult struct {
	PowershellAvailable bool
	SqlcmdAvailable     bool
	ServersFile         string // saved directory enumeration, empty if none
}

// Detector abstracts filesystem and path lookups for testing.
type Detector interface {
	LookPath(name string) (string, error)
	Stat(path string) (os.FileInfo, error)
	Glob(pattern string) ([]string, error)
}

// OSDetector uses the real OS for detection.
type OSDetector struct{}

func (OSDetector) LookPath(name string) (string, error)  { return exec.LookPath(name) }
func (OSDetector) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }
func (OSDetector) Glob(pattern string) ([]string, error) { return filepath.Glob(pattern) }

// Detect scans the environment for the tools and files the collectors
// can work with.
func Detect(d Detector) DetectionResult {
	if d == nil {
		d = OSDetector{}
	}

	result := DetectionResult{}

	if _, err := d.LookPath("powershell"); err == nil {
		result.PowershellAvailable = true
	}
	if _, err := d.LookPath("sqlcmd"); err == nil {
		result.SqlcmdAvailable = true
	}

	// A previous run may have saved the directory enumeration; offering
	// it as the source avoids hitting the domain controller again.
	savedPaths := []string{
		"ad_ou_servers.txt",
		filepath.Join("output", "ad_ou_servers.txt"),
	}
	for _, p := range savedPaths {
		if _, err := d.Stat(p); err == nil {
			result.ServersFile = p
			break
		}
	}
	if result.ServersFile == "" {
		if matches, err := d.Glob(filepath.Join("output", "ad_*.txt")); err == nil && len(matches) > 0 {
			result.ServersFile = matches[0]
		}
	}

	return result
}
