package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	id  string
	val int
}

func TestTablePutDeleteLeaveReceiverUntouched(t *testing.T) {
	base := NewTable([]row{{"b", 2}, {"a", 1}}, func(r row) string { return r.id })

	grown := base.Put("c", row{"c", 3})
	shrunk := grown.Delete("a", "missing")

	assert.Equal(t, 2, base.Len())
	assert.False(t, base.Has("c"))
	assert.Equal(t, 3, grown.Len())
	assert.True(t, grown.Has("a"))
	assert.Equal(t, []string{"b", "c"}, shrunk.Keys())
}

func TestTableValuesAndFilterAreIDOrdered(t *testing.T) {
	tbl := NewTable([]row{{"z", 26}, {"m", 13}, {"a", 1}}, func(r row) string { return r.id })

	assert.Equal(t, []row{{"a", 1}, {"m", 13}, {"z", 26}}, tbl.Values())
	assert.Equal(t, []row{{"m", 13}, {"z", 26}}, tbl.Filter(func(r row) bool { return r.val > 1 }))

	var zero Table[row]
	assert.Empty(t, zero.Values())
	assert.Equal(t, 1, zero.Put("x", row{"x", 0}).Len())
	assert.Equal(t, 0, zero.Delete("x").Len())
}
