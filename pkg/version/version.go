package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// set by -ldflags "-X kubegems.io/swapimport/pkg/version.gitVersion=..."
var (
	gitVersion = "v0.0.0-dev"
	gitCommit  = ""
	buildDate  = ""
)

type Version struct {
	GitVersion string `json:"gitVersion"`
	GitCommit  string `json:"gitCommit"`
	BuildDate  string `json:"buildDate"`
	GoVersion  string `json:"goVersion"`
	Platform   string `json:"platform"`
}

func (v Version) String() string {
	if v.GitCommit == "" {
		return fmt.Sprintf("%s (%s %s)", v.GitVersion, v.GoVersion, v.Platform)
	}
	return fmt.Sprintf("%s+%s (%s %s)", v.GitVersion, v.GitCommit, v.GoVersion, v.Platform)
}

func Get() Version {
	v := Version{
		GitVersion: gitVersion,
		GitCommit:  gitCommit,
		BuildDate:  buildDate,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
	if v.GitCommit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
					v.GitCommit = setting.Value[:7]
				}
			}
		}
	}
	return v
}
