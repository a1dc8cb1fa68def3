package toolcache

import (
	"sort"

	"github.com/coreos/go-semver/semver"
)

// sortVersions orders names by semantic version. Names that do not parse as
// semver sort after every valid version, lexically among themselves.
func sortVersions(names []string) {
	parsed := make(map[string]*semver.Version, len(names))
	for _, name := range names {
		if v, err := semver.NewVersion(name); err == nil {
			parsed[name] = v
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		vi, iok := parsed[names[i]]
		vj, jok := parsed[names[j]]
		switch {
		case iok && jok:
			if vi.Equal(*vj) {
				return names[i] < names[j]
			}
			return vi.LessThan(*vj)
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})
}
