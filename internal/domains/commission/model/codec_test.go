package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeListNilEncodesAsEmptyArray(t *testing.T) {
	encoded, err := EncodeList[Comment](nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", encoded)

	encoded, err = EncodeList([]Phase{})
	require.NoError(t, err)
	assert.Equal(t, "[]", encoded)
}

func TestDecodeListEmptyInputs(t *testing.T) {
	for _, raw := range []string{"", "null", "[]"} {
		decoded, err := DecodeList[Preview](raw)
		require.NoError(t, err, "input %q", raw)
		assert.NotNil(t, decoded)
		assert.Empty(t, decoded)
	}
}

func TestDecodeListMalformedInput(t *testing.T) {
	_, err := DecodeList[Phase]("{not json")
	assert.Error(t, err)
}

func TestCodecRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	comments := []Comment{
		{Author: "cliente1", Timestamp: now, Text: "Primeira versão ficou ótima!"},
		{
			Author:            "cliente1",
			Timestamp:         now,
			Text:              "Ajustar o fundo.",
			IsRevisionRequest: true,
			PhaseName:         "Colorização",
		},
	}

	encoded, err := EncodeList(comments)
	require.NoError(t, err)

	decoded, err := DecodeList[Comment](encoded)
	require.NoError(t, err)
	assert.Equal(t, comments, decoded)
}
