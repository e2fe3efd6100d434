// Package buildinfo carries the release stamp set with -ldflags, e.g.
//
//	-X filmplakat/internal/buildinfo.Version=v1.2.0
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short is the version for a release build, otherwise the commit, otherwise
// "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Banner is the boot log line.
func Banner() string {
	s := "filmplakat " + Short()
	if Date != "" && Date != "unknown" {
		s += " built " + Date
	}
	return s
}
