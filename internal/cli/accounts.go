package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/tgsession/internal/account"
)

// accountView is the printable form of an account. It carries the raw key
// in hex, since extracting it is the point of the parse command.
type accountView struct {
	DCID          int              `json:"dc_id" yaml:"dc_id"`
	ServerAddress string           `json:"server_address" yaml:"server_address"`
	Port          int              `json:"port" yaml:"port"`
	AuthKey       string           `json:"auth_key" yaml:"auth_key"`
	KeyID         string           `json:"key_id" yaml:"key_id"`
	UserID        *int64           `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	RegisteredAt  *time.Time       `json:"register_at,omitempty" yaml:"register_at,omitempty"`
	Identity      account.Identity `json:"identity" yaml:"identity"`
}

func newAccountView(a *account.Account) accountView {
	v := accountView{
		DCID:          a.RawDCID(),
		ServerAddress: a.ServerAddress(),
		Port:          a.Port(),
		AuthKey:       a.AuthKeyHex(),
		KeyID:         formatKeyID(a.KeyID()),
		Identity:      a.Identity(),
	}
	if uid, ok := a.UserID(); ok {
		v.UserID = &uid
	}
	if ts, ok := a.RegisteredAt(); ok {
		v.RegisteredAt = &ts
	}
	return v
}

func formatKeyID(id uint64) string {
	return fmt.Sprintf("%016x", id)
}

// AccountList renders parsed accounts as a table.
type AccountList []accountView

func newAccountList(accounts []*account.Account) AccountList {
	list := make(AccountList, 0, len(accounts))
	for _, a := range accounts {
		list = append(list, newAccountView(a))
	}
	return list
}

// Headers implements TableRenderer.
func (l AccountList) Headers() []string {
	return []string{"DC", "SERVER", "PORT", "USER ID", "REGISTERED", "KEY ID"}
}

// Rows implements TableRenderer.
func (l AccountList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, v := range l {
		user, registered := "-", "-"
		if v.UserID != nil {
			user = strconv.FormatInt(*v.UserID, 10)
		}
		if v.RegisteredAt != nil {
			registered = v.RegisteredAt.UTC().Format(time.RFC3339)
		}
		server := v.ServerAddress
		if server == "" {
			server = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(v.DCID), server, strconv.Itoa(v.Port), user, registered, v.KeyID,
		})
	}
	return rows
}
