// Package version holds build metadata set by -ldflags.
package version

import "github.com/Masterminds/semver/v3"

// Version is the release, e.g. -ldflags "-X .../version.Version=1.2.0".
var Version = "dev"

// Release parses Version. ok is false for development builds.
func Release() (v *semver.Version, ok bool) {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil, false
	}
	return v, true
}
