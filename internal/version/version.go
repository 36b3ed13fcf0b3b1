package version

import (
	"github.com/prometheus/client_golang/prometheus"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	commonversion "github.com/prometheus/common/version"
)

const Program = "certportal"

// Set at build time with -ldflags "-X certportal/internal/version.Version=...".
var (
	Version   string = "dev"
	GitCommit string = "unknown"
	BuildTime string = "unknown"
)

func init() {
	commonversion.Version = Version
	commonversion.Revision = GitCommit
	commonversion.BuildDate = BuildTime
}

func GetVersion() string {
	return Version
}

// Info is the build identity reported by the health endpoint.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

func GetInfo() Info {
	return Info{Version: Version, Commit: GitCommit, BuildTime: BuildTime}
}

// Print returns the multi-line build report used by the version command.
func Print() string {
	return commonversion.Print(Program)
}

// NewCollector exposes build information as the certportal_build_info metric.
func NewCollector() prometheus.Collector {
	return versioncollector.NewCollector(Program)
}
