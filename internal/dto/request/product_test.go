package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductUpdateRequestToFields(t *testing.T) {
	price := 19.5
	color := "red"

	req := ProductUpdateRequest{Price: &price, Color: &color}

	assert.Equal(t, map[string]any{"price": 19.5, "color": "red"}, req.ToFields())
	assert.Empty(t, (&ProductUpdateRequest{}).ToFields())
}
