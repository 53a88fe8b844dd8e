package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderItems(t *testing.T) {
	o := Order{ItemsJson: `[{"itemName":"Chicken Biryani","unitPrice":250,"quantity":2},{"itemName":"Raita","unitPrice":40,"quantity":1}]`}

	lines := o.Items()
	require.Len(t, lines, 2)
	assert.Equal(t, "Chicken Biryani", lines[0].ItemName)
	assert.Equal(t, 250.0, lines[0].UnitPrice)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "Raita", lines[1].ItemName)
}

func TestOrderItemsEmpty(t *testing.T) {
	var o Order
	assert.Empty(t, o.Items())

	o.ItemsJson = "not json"
	assert.Empty(t, o.Items())
}
