package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateGrowth(t *testing.T) {
	assert.Equal(t, 0.0, CalculateGrowth(0, 0))
	assert.Equal(t, 100.0, CalculateGrowth(50, 0))
	assert.Equal(t, 100.0, CalculateGrowth(200, 100))
	assert.Equal(t, -50.0, CalculateGrowth(50, 100))
	assert.Equal(t, 0.0, CalculateGrowth(100, 100))
}

func TestIsValidValueOfConstant(t *testing.T) {
	statuses := []string{"pending", "preparing", "ready", "delivered"}

	assert.True(t, IsValidValueOfConstant("pending", statuses))
	assert.True(t, IsValidValueOfConstant("delivered", statuses))
	assert.False(t, IsValidValueOfConstant("cancelled", statuses))
	assert.False(t, IsValidValueOfConstant("", statuses))
	assert.False(t, IsValidValueOfConstant("Pending", statuses))
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))

	p := StringPtr("x")
	assert.NotNil(t, p)
	assert.Equal(t, "x", *p)
}
