package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVideoDuration(t *testing.T) {
	assert.Equal(t, "0m", FormatVideoDuration(0))
	assert.Equal(t, "0m", FormatVideoDuration(59.9))
	assert.Equal(t, "12m", FormatVideoDuration(755))
	assert.Equal(t, "1h 5m", FormatVideoDuration(3900))
	assert.Equal(t, "2h 0m", FormatVideoDuration(7200))
}
