package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchema_AmountColumns(t *testing.T) {
	assert.Equal(t, "NUMERIC(20, 4)", amountType)

	ddl := strings.Join(schema, "\n")
	assert.NotContains(t, ddl, "{{amount}}")
	assert.Equal(t, 4, strings.Count(ddl, amountType))
}
