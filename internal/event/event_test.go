package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{BatchStarted, "BatchStarted"},
		{SourceStarted, "SourceStarted"},
		{SourceCompleted, "SourceCompleted"},
		{SourceFailed, "SourceFailed"},
		{BatchComplete, "BatchComplete"},
		{Type(0), "Unknown"},
		{Type(99), "Unknown"},
		{Type(-1), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestEventZeroValue(t *testing.T) {
	var e Event
	assert.Equal(t, Type(0), e.Type)
	assert.True(t, e.Timestamp.IsZero())
	assert.Empty(t, e.Source)
	assert.Zero(t, e.Bytes)
	assert.Zero(t, e.Lines)
	assert.NoError(t, e.Error)
}
