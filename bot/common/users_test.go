package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserID(t *testing.T) {
	id, err := ParseUserID("123456789012345678")
	require.NoError(t, err)
	assert.Equal(t, int64(123456789012345678), id)

	_, err = ParseUserID("not-a-snowflake")
	assert.Error(t, err)
}

func TestFormatUserID_RoundTrips(t *testing.T) {
	id, err := ParseUserID(FormatUserID(123456))
	require.NoError(t, err)
	assert.Equal(t, int64(123456), id)
}

func TestGetUserMention(t *testing.T) {
	assert.Equal(t, "<@123456>", GetUserMention(123456))
}
