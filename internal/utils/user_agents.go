package utils

import (
	"fmt"

	"github.com/avct/uasurfer"
)

// ClientAgent is the parsed User-Agent stored on download audit rows.
type ClientAgent struct {
	BrowserName    string
	BrowserVersion string
	OSName         string
	OSVersion      string
	DeviceType     string
}

// ParseUserAgent extracts browser, OS and device names. Versions uasurfer could not
// detect are left empty rather than reported as 0.0.0.
func ParseUserAgent(raw string) ClientAgent {
	ua := uasurfer.Parse(raw)

	return ClientAgent{
		BrowserName:    ua.Browser.Name.StringTrimPrefix(),
		BrowserVersion: versionString(ua.Browser.Version),
		OSName:         ua.OS.Name.StringTrimPrefix(),
		OSVersion:      versionString(ua.OS.Version),
		DeviceType:     ua.DeviceType.StringTrimPrefix(),
	}
}

func versionString(v uasurfer.Version) string {
	if v.Major == 0 && v.Minor == 0 && v.Patch == 0 {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
