// Package buildinfo carries the version stamped into mindtower binaries.
//
// The variables are overwritten at link time:
//
//	go build -ldflags "-X github.com/matzehuels/mindtower/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/mindtower/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/mindtower/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// The CLI prints them for --version and the API reports them on /healthz.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is a snapshot of the link-time variables.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"built"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Short returns the version with the first seven characters of the commit,
// e.g. "v0.3.0 (1a2b3c4)". Development builds report just the version.
func (i Info) Short() string {
	if i.Commit == "" || i.Commit == "none" {
		return i.Version
	}
	c := i.Commit
	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("%s (%s)", i.Version, c)
}

func (i Info) String() string {
	return fmt.Sprintf("mindtower %s\ncommit: %s\nbuilt: %s", i.Version, i.Commit, i.Date)
}

// Template returns the cobra version template.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", i.Short(), i.Commit, i.Date)
}
