package params

import "strconv"

// Version modes of sponge_db_version. The catalog is partitioned by
// version, so everything downstream of scope resolution carries one of
// these. VersionAny disables the partition, VersionLatest resolves to the
// highest version present in the dataset table.
const (
	VersionAny    int64 = -1
	VersionLatest int64 = -2
)

// ParseVersion maps the raw query value to a version selector. An empty
// value means "latest", matching the public default of the API.
func ParseVersion(raw string) (int64, bool) {
	switch raw {
	case "", "latest":
		return VersionLatest, true
	case "any":
		return VersionAny, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}
