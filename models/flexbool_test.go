package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceFlag(t *testing.T) {
	truthy := []interface{}{true, "true", "TRUE", "True", "1", 1, int64(1), float64(1), json.Number("1")}
	for _, v := range truthy {
		assert.True(t, CoerceFlag(v), "value %#v", v)
	}

	falsy := []interface{}{false, "false", "0", "", "yes", 0, int64(0), float64(0), 2, nil, []string{"true"}}
	for _, v := range falsy {
		assert.False(t, CoerceFlag(v), "value %#v", v)
	}
}

func TestFlexBoolUnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`"true"`, true},
		{`"1"`, true},
		{`1`, true},
		{`false`, false},
		{`"false"`, false},
		{`0`, false},
		{`null`, false},
		{`""`, false},
		{`"garbage"`, false},
		{`{"nested": true}`, false},
	}

	for _, tt := range tests {
		var f FlexBool
		err := json.Unmarshal([]byte(tt.raw), &f)
		require.NoError(t, err, "raw %s", tt.raw)
		assert.Equal(t, tt.want, f.Bool(), "raw %s", tt.raw)
	}
}

func TestFlexBoolMarshalJSON(t *testing.T) {
	out, err := json.Marshal(FlexBool(true))
	require.NoError(t, err)
	assert.Equal(t, `true`, string(out))

	out, err = json.Marshal(FlexBool(false))
	require.NoError(t, err)
	assert.Equal(t, `false`, string(out))
}

func TestFlexBoolScan(t *testing.T) {
	var f FlexBool

	require.NoError(t, f.Scan(true))
	assert.True(t, f.Bool())

	require.NoError(t, f.Scan(nil))
	assert.False(t, f.Bool())

	require.NoError(t, f.Scan([]byte("true")))
	assert.True(t, f.Bool())

	require.NoError(t, f.Scan([]byte("0")))
	assert.False(t, f.Bool())
}
