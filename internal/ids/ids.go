// Package ids generates identifiers for stored records.
package ids

import (
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Entity id prefixes.
const (
	PrefixTenant       = "tenant"
	PrefixOrganization = "org"
	PrefixUser         = "user"
	PrefixRole         = "role"
	PrefixPrivilege    = "priv"
	PrefixLegalEntity  = "legal"
	PrefixAudit        = "audit"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0) //nolint:gosec // ids are not secrets.
)

// New returns "<prefix>-<uuid>". Random UUIDs stay unique across concurrent inserts.
func New(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// NewAudit returns "audit-<ulid>". ULIDs sort lexicographically by creation
// time, and the monotonic source keeps that order within one millisecond.
func NewAudit() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	return PrefixAudit + "-" + ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
