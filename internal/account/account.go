// Package account defines the canonical, validated in-memory representation
// of a Telegram account credential.
//
// An Account is built once from Fields and never mutated afterwards. The
// credential invariants (256-byte auth key, resolved data-center id) are
// enforced by the accessors that need them, so an Account read from a damaged
// container can still be inspected.
package account

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tgsession/internal/common"
)

// Fields is the plain mapping an Account is built from. Pointer fields are
// optional; nil means "not provided".
type Fields struct {
	DCID          int        `mapstructure:"dc_id"`
	ServerAddress string     `mapstructure:"server_address"`
	Port          int        `mapstructure:"port"`
	AuthKey       []byte     `mapstructure:"auth_key"`
	UserID        *int64     `mapstructure:"user_id"`
	RegisteredAt  *time.Time `mapstructure:"register_at"`

	APIID         *int    `mapstructure:"api_id"`
	APIHash       *string `mapstructure:"api_hash"`
	DeviceModel   *string `mapstructure:"device_model"`
	SystemVersion *string `mapstructure:"system_version"`
	AppVersion    *string `mapstructure:"app_version"`
	LangCode      *string `mapstructure:"lang_code"`
}

// Account is an immutable credential. Use New to construct one.
type Account struct {
	dcID          int
	serverAddress string
	authKey       []byte
	userID        *int64
	registeredAt  *time.Time
	identity      Identity
}

// New builds an Account from f. The auth key is copied, the server address is
// resolved from the data-center table when f leaves it empty, and the port
// from f is ignored.
func New(f Fields) *Account {
	a := &Account{
		dcID:          f.DCID,
		serverAddress: f.ServerAddress,
		authKey:       bytes.Clone(f.AuthKey),
		identity:      DefaultIdentity().overlay(f),
	}
	if a.authKey == nil {
		a.authKey = []byte{}
	}
	if a.serverAddress == "" {
		a.serverAddress, _ = ResolveAddress(f.DCID)
	}
	if f.UserID != nil {
		id := *f.UserID
		a.userID = &id
	}
	if f.RegisteredAt != nil {
		ts := *f.RegisteredAt
		a.registeredAt = &ts
	}
	return a
}

// DCID returns the data-center id, failing with common.ErrInvalidCredential
// for ids 1 through 5.
func (a *Account) DCID() (int, error) {
	if unresolvedDC(a.dcID) {
		return 0, fmt.Errorf("%w: dc id %d not resolved", common.ErrInvalidCredential, a.dcID)
	}
	return a.dcID, nil
}

// RawDCID returns the data-center id without the resolution check.
func (a *Account) RawDCID() int {
	return a.dcID
}

// ServerAddress returns the resolved server address, or "" when the
// data-center id has no known mapping.
func (a *Account) ServerAddress() string {
	return a.serverAddress
}

// Port always returns 443.
func (a *Account) Port() int {
	return common.DefaultPort
}

// AuthKey returns a copy of the raw auth key, failing with
// common.ErrInvalidCredential unless it is exactly 256 bytes.
func (a *Account) AuthKey() ([]byte, error) {
	if len(a.authKey) != common.AuthKeySize {
		return nil, fmt.Errorf("%w: auth key is %d bytes, want %d",
			common.ErrInvalidCredential, len(a.authKey), common.AuthKeySize)
	}
	return bytes.Clone(a.authKey), nil
}

// AuthKeyHex returns the auth key as lowercase hex without validating it.
func (a *Account) AuthKeyHex() string {
	return hex.EncodeToString(a.authKey)
}

// KeyID returns the MTProto auth key id: the low 64 bits of SHA-1(auth key),
// little-endian. Safe to log.
func (a *Account) KeyID() uint64 {
	sum := sha1.Sum(a.authKey)
	return binary.LittleEndian.Uint64(sum[12:])
}

// UserID returns the user id, if one was resolved.
func (a *Account) UserID() (int64, bool) {
	if a.userID == nil {
		return 0, false
	}
	return *a.userID, true
}

// RegisteredAt returns the registration timestamp, if one was resolved.
func (a *Account) RegisteredAt() (time.Time, bool) {
	if a.registeredAt == nil {
		return time.Time{}, false
	}
	return *a.registeredAt, true
}

// Identity returns the client-presentation fields.
func (a *Account) Identity() Identity {
	return a.identity
}

// Validate checks both credential invariants.
func (a *Account) Validate() error {
	if _, err := a.DCID(); err != nil {
		return err
	}
	if _, err := a.AuthKey(); err != nil {
		return err
	}
	return nil
}
