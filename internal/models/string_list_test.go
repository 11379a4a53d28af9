package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_Value(t *testing.T) {
	v, err := StringList{"a", "b"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestStringList_Scan(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected StringList
		wantErr  bool
	}{
		{name: "bytes", input: []byte(`["x","y"]`), expected: StringList{"x", "y"}},
		{name: "string", input: `["x"]`, expected: StringList{"x"}},
		{name: "nil", input: nil, expected: nil},
		{name: "empty string", input: "", expected: nil},
		{name: "unsupported type", input: 12, wantErr: true},
		{name: "malformed json", input: "[", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			err := l.Scan(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, l)
		})
	}
}

func TestStringList_MarshalJSONNilIsEmptyArray(t *testing.T) {
	data, err := json.Marshal(struct {
		Tags StringList `json:"tags"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tags":[]}`, string(data))
}

func TestStringList_Normalize(t *testing.T) {
	assert.Equal(t, StringList{"a", "b"}, StringList{" a", "b ", "a", "  "}.Normalize())
	assert.Empty(t, StringList{}.Normalize())
}

func TestTagRows(t *testing.T) {
	a := validTransaction()
	b := validTransaction()
	b.TransactionID = 1002
	b.Tags = StringList{"gift", "gift"}
	c := validTransaction()
	c.TransactionID = 1003
	c.Tags = nil

	rows := TagRows([]Transaction{a, b, c})

	assert.Equal(t, []TransactionTag{
		{TransactionID: 1001, Tag: "sports"},
		{TransactionID: 1001, Tag: "sale"},
		{TransactionID: 1002, Tag: "gift"},
	}, rows)
}
