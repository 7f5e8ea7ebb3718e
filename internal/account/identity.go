package account

// Identity holds the client-presentation fields written alongside a credential.
// None of them is validated.
type Identity struct {
	APIID         int    `json:"api_id" yaml:"api_id"`
	APIHash       string `json:"api_hash" yaml:"api_hash"`
	DeviceModel   string `json:"device_model" yaml:"device_model"`
	SystemVersion string `json:"system_version" yaml:"system_version"`
	AppVersion    string `json:"app_version" yaml:"app_version"`
	LangCode      string `json:"lang_code" yaml:"lang_code"`
}

// DefaultIdentity returns the identity of the official desktop client.
func DefaultIdentity() Identity {
	return Identity{
		APIID:         2040,
		APIHash:       "b18441a1ff607e10a989891a5462e627",
		DeviceModel:   "Desktop",
		SystemVersion: "Windows 10",
		AppVersion:    "3.4.3 x64",
		LangCode:      "en",
	}
}

// overlay returns id with every non-nil override from f applied.
func (id Identity) overlay(f Fields) Identity {
	if f.APIID != nil {
		id.APIID = *f.APIID
	}
	if f.APIHash != nil {
		id.APIHash = *f.APIHash
	}
	if f.DeviceModel != nil {
		id.DeviceModel = *f.DeviceModel
	}
	if f.SystemVersion != nil {
		id.SystemVersion = *f.SystemVersion
	}
	if f.AppVersion != nil {
		id.AppVersion = *f.AppVersion
	}
	if f.LangCode != nil {
		id.LangCode = *f.LangCode
	}
	return id
}
