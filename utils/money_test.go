package utils_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"wrenchking-billing/utils"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, utils.Round2(1.234))
	assert.Equal(t, 1.24, utils.Round2(1.236))
	assert.Equal(t, -2.57, utils.Round2(-2.566))
	assert.Equal(t, 0.0, utils.Round2(0))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "₹0.00", utils.FormatAmount(0))
	assert.Equal(t, "₹1234.50", utils.FormatAmount(1234.499))
	assert.Equal(t, "₹770.00", utils.FormatAmount(770))

	// The list view's NaN guard.
	assert.Equal(t, "₹0.00", utils.FormatAmount(math.NaN()))
	assert.Equal(t, "₹0.00", utils.FormatAmount(math.Inf(1)))
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 42, utils.ParseIntDefault("42", 7))
	assert.Equal(t, 42, utils.ParseIntDefault(" 42 ", 7))
	assert.Equal(t, 7, utils.ParseIntDefault("", 7))
	assert.Equal(t, 7, utils.ParseIntDefault("-3", 7))
	assert.Equal(t, 7, utils.ParseIntDefault("many", 7))
}
