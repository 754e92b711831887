package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelQuery_CompletedGuard(t *testing.T) {
	query, args, err := cancelQuery(42, "планы изменились")
	require.NoError(t, err)

	// Pending отменяется всегда, confirmed - только до конца интервала.
	// Условие живёт в самом UPDATE: confirmed с прошедшим date_end не
	// попадает под него даже при гонке с проверкой на сервисном слое
	assert.Contains(t, query, "status = ")
	assert.Contains(t, query, "date_end > NOW()")
	assert.Contains(t, query, " OR ")

	assert.Contains(t, args, int64(42))
	assert.Contains(t, args, "планы изменились")
	assert.Contains(t, args, "pending")
	assert.Contains(t, args, "confirmed")
}
