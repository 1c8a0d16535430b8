package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFlag_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Flag
	}{
		{`true`, true},
		{`false`, false},
		{`"true"`, true},
		{`"false"`, false},
		{`"TRUE"`, false},
		{`"yes"`, false},
		{`""`, false},
		{`null`, false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			f := !tc.want
			require.NoError(t, json.Unmarshal([]byte(tc.in), &f))
			assert.Equal(t, tc.want, f)
		})
	}
}

func TestFlag_UnmarshalJSON_Invalid(t *testing.T) {
	var f Flag
	assert.Error(t, json.Unmarshal([]byte(`42`), &f))
}

func TestFlag_MarshalJSONWritesBoolean(t *testing.T) {
	out, err := json.Marshal(struct {
		IsAdmin Flag `json:"isAdmin"`
	}{IsAdmin: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"isAdmin":true}`, string(out))
}

func TestFlag_BSONLegacyStrings(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"username":  "legacy",
		"isAdmin":   "true",
		"isBlocked": "false",
	})
	require.NoError(t, err)

	var u User
	require.NoError(t, bson.Unmarshal(raw, &u))
	assert.True(t, u.IsAdmin.Bool())
	assert.False(t, u.IsBlocked.Bool())
	assert.False(t, u.CanCreate.Bool())
}

func TestFlag_BSONRoundTripIsBoolean(t *testing.T) {
	raw, err := bson.Marshal(User{ID: "u1", Username: "alice", IsBlocked: true})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, true, doc["isBlocked"])
	assert.Equal(t, false, doc["isAdmin"])

	var u User
	require.NoError(t, bson.Unmarshal(raw, &u))
	assert.True(t, u.IsBlocked.Bool())
}

func TestFlag_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want Flag
	}{
		{"nil", nil, false},
		{"bool", true, true},
		{"string", "true", true},
		{"bytes", []byte("false"), false},
		{"int", int64(1), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var f Flag
			require.NoError(t, f.Scan(tc.src))
			assert.Equal(t, tc.want, f)
		})
	}

	var f Flag
	assert.Error(t, f.Scan(3.5))

	v, err := Flag(true).Value()
	require.NoError(t, err)
	assert.Equal(t, true, v)
}
