package storage

import (
	"testing"
	"time"

	"github.com/picolabs/pico/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID{}},
		{"content-based ID", core.IDFromContent("test content")},
		{"another content-based ID", core.IDFromContent("Tokyo is the capital of Japan.")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.Len(t, data, 16)

			// Unmarshal
			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"short data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalID(tt.data)
			assert.ErrorIs(t, err, ErrTruncatedData)
		})
	}
}

func TestMarshalUnmarshalDocument(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	doc := core.NewDocument("Paris is the capital of France.", core.SourceWeb)
	doc.AddedAt = now
	doc.Vector = []float32{0.25, -0.5, 1.0, 0.0}

	data := MarshalDocument(doc)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalDocument(data)
	require.NoError(t, err)

	assert.Equal(t, doc.Id, decoded.Id)
	assert.Equal(t, doc.Text, decoded.Text)
	assert.Equal(t, doc.Source, decoded.Source)
	assert.True(t, doc.AddedAt.Equal(decoded.AddedAt))
	assert.Equal(t, doc.Vector, decoded.Vector)
}

func TestMarshalUnmarshalDocument_NoVector(t *testing.T) {
	doc := core.NewDocument("unembedded text", core.SourceManual)
	doc.AddedAt = time.Now().UTC().Truncate(time.Microsecond)

	decoded, err := UnmarshalDocument(MarshalDocument(doc))
	require.NoError(t, err)
	assert.Empty(t, decoded.Vector)
	assert.Equal(t, doc.Text, decoded.Text)
}

func TestUnmarshalDocument_Truncated(t *testing.T) {
	doc := core.NewDocument("some evidence", core.SourceIngested)
	doc.AddedAt = time.Now().UTC()
	data := MarshalDocument(doc)

	_, err := UnmarshalDocument(data[:len(data)-3])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
