package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	assert.Equal(t, 1500.5, ParseFloat("1500.5"))
	assert.Equal(t, 0.0, ParseFloat(""))
	assert.Equal(t, 0.0, ParseFloat("  "))
	assert.Equal(t, 0.0, ParseFloat("abc"))
	assert.Equal(t, 250.0, ParseFloat(" 250 "))
	assert.Equal(t, -10.0, ParseFloat("-10"))
}
