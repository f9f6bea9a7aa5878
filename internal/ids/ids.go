package ids

import "github.com/segmentio/ksuid"

// New returns a k-sortable unique id, used for session ids and stored
// poster filename prefixes.
func New() string {
	return ksuid.New().String()
}
