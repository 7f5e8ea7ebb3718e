package account

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/tgsession/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(seed byte) []byte {
	key := make([]byte, common.AuthKeySize)
	for i := range key {
		key[i] = seed + byte(i)
	}
	return key
}

func int64p(v int64) *int64 { return &v }

func TestNew_AuthKeyRoundTrip(t *testing.T) {
	for _, dc := range []int{0, 6, 121, -3, 1000} {
		for _, seed := range []byte{0, 7, 0xAB} {
			key := testKey(seed)
			a := New(Fields{DCID: dc, AuthKey: key})

			got, err := a.AuthKey()
			require.NoError(t, err)
			assert.Equal(t, key, got)

			gotDC, err := a.DCID()
			require.NoError(t, err)
			assert.Equal(t, dc, gotDC)
		}
	}
}

func TestNew_CopiesAuthKey(t *testing.T) {
	key := testKey(1)
	a := New(Fields{DCID: 121, AuthKey: key})

	key[0] ^= 0xFF
	got, err := a.AuthKey()
	require.NoError(t, err)
	assert.NotEqual(t, key[0], got[0], "account must own its key")

	got[1] ^= 0xFF
	again, err := a.AuthKey()
	require.NoError(t, err)
	assert.NotEqual(t, got[1], again[1], "accessor must return a copy")
}

func TestDCID_LowIdsAreUnresolved(t *testing.T) {
	for dc := 1; dc <= 5; dc++ {
		a := New(Fields{DCID: dc, AuthKey: testKey(0)})

		_, err := a.DCID()
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidCredential)
		assert.NotEmpty(t, a.ServerAddress(), "address lookup still succeeds for dc %d", dc)
		assert.Equal(t, dc, a.RawDCID())
		assert.ErrorIs(t, a.Validate(), common.ErrInvalidCredential)
	}
}

func TestAuthKey_WrongLength(t *testing.T) {
	for _, n := range []int{0, 255, 257} {
		a := New(Fields{DCID: 121, AuthKey: make([]byte, n)})

		_, err := a.AuthKey()
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidCredential)
		assert.Equal(t, hex.EncodeToString(make([]byte, n)), a.AuthKeyHex())
	}
}

func TestServerAddress_Resolution(t *testing.T) {
	tests := []struct {
		name  string
		input Fields
		want  string
	}{
		{name: "explicit address wins", input: Fields{DCID: 2, ServerAddress: "10.0.0.1"}, want: "10.0.0.1"},
		{name: "dc 2 from table", input: Fields{DCID: 2}, want: "149.154.167.51"},
		{name: "dc 5 from table", input: Fields{DCID: 5}, want: "91.108.56.130"},
		{name: "dc 121 from table", input: Fields{DCID: 121}, want: "95.213.217.195"},
		{name: "unknown dc", input: Fields{DCID: 7}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.input).ServerAddress())
		})
	}
}

func TestPort_AlwaysDefault(t *testing.T) {
	a := New(Fields{DCID: 121, Port: 8443})
	assert.Equal(t, 443, a.Port())
}

func TestOptionalFields(t *testing.T) {
	a := New(Fields{DCID: 121})
	_, ok := a.UserID()
	assert.False(t, ok)
	_, ok = a.RegisteredAt()
	assert.False(t, ok)

	ts := time.Unix(1700000000, 0).UTC()
	b := New(Fields{DCID: 121, UserID: int64p(42), RegisteredAt: &ts})
	uid, ok := b.UserID()
	require.True(t, ok)
	assert.Equal(t, int64(42), uid)
	got, ok := b.RegisteredAt()
	require.True(t, ok)
	assert.True(t, ts.Equal(got))
}

func TestIdentity_DefaultsAndOverrides(t *testing.T) {
	a := New(Fields{DCID: 121})
	assert.Equal(t, DefaultIdentity(), a.Identity())

	model := "Pixel 8"
	apiID := 12345
	b := New(Fields{DCID: 121, DeviceModel: &model, APIID: &apiID})
	id := b.Identity()
	assert.Equal(t, "Pixel 8", id.DeviceModel)
	assert.Equal(t, 12345, id.APIID)
	assert.Equal(t, DefaultIdentity().APIHash, id.APIHash)
	assert.Equal(t, DefaultIdentity().LangCode, id.LangCode)
}

func TestKeyID_DependsOnKey(t *testing.T) {
	a := New(Fields{DCID: 121, AuthKey: testKey(1)})
	b := New(Fields{DCID: 121, AuthKey: testKey(2)})

	assert.NotEqual(t, a.KeyID(), b.KeyID())
	assert.Equal(t, a.KeyID(), New(Fields{DCID: 121, AuthKey: testKey(1)}).KeyID())
}

func TestDecodeFields_LooseInput(t *testing.T) {
	key := testKey(3)
	var payload map[string]any
	dec := json.NewDecoder(bytes.NewReader([]byte(`{
		"dc_id": 121,
		"user_id": 9007199254740993,
		"auth_key": "` + hex.EncodeToString(key) + `",
		"register_at": 1700000000,
		"api_id": "777",
		"lang_code": "de",
		"unexpected": true
	}`)))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&payload))

	f, err := DecodeFields(payload)
	require.NoError(t, err)

	assert.Equal(t, 121, f.DCID)
	require.NotNil(t, f.UserID)
	assert.Equal(t, int64(9007199254740993), *f.UserID)
	assert.Equal(t, key, f.AuthKey)
	require.NotNil(t, f.RegisteredAt)
	assert.True(t, time.Unix(1700000000, 0).Equal(*f.RegisteredAt))
	require.NotNil(t, f.APIID)
	assert.Equal(t, 777, *f.APIID)
	require.NotNil(t, f.LangCode)
	assert.Equal(t, "de", *f.LangCode)
	assert.Nil(t, f.DeviceModel)
}

func TestDecodeFields_Timestamps(t *testing.T) {
	want := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)

	for name, v := range map[string]any{
		"float":      float64(1700000000),
		"int":        1700000000,
		"string":     "2023-11-14 22:13:20",
		"rfc3339":    "2023-11-14T22:13:20Z",
		"epoch text": "1700000000",
		"time":       want,
	} {
		t.Run(name, func(t *testing.T) {
			f, err := DecodeFields(map[string]any{"register_at": v})
			require.NoError(t, err)
			require.NotNil(t, f.RegisteredAt)
			assert.True(t, want.Equal(*f.RegisteredAt), "got %v", *f.RegisteredAt)
		})
	}
}

func TestDecodeFields_RawBytesAndNulls(t *testing.T) {
	key := testKey(9)
	f, err := DecodeFields(map[string]any{
		"dc_id":    float64(4),
		"auth_key": key,
		"user_id":  nil,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, f.DCID)
	assert.Equal(t, key, f.AuthKey)
	assert.Nil(t, f.UserID)
}

func TestDecodeFields_Errors(t *testing.T) {
	_, err := DecodeFields(map[string]any{"auth_key": "zz-not-hex"})
	require.Error(t, err)

	_, err = DecodeFields(map[string]any{"register_at": "yesterday"})
	require.Error(t, err)

	_, err = DecodeFields(map[string]any{"dc_id": "two"})
	require.Error(t, err)
}
