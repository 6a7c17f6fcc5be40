package intervals

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"
)

func TestIntervalRelations(t *testing.T) {
	a := NewInterval(2, 4, 20, 44)
	b := NewInterval(5, 5, 50, 55)
	c := NewInterval(3, 4, 30, 44)

	tassert.True(t, b.GreaterThanExclusive(a))
	tassert.True(t, c.ContainedBy(a))
	tassert.True(t, a.Contains(c))
	tassert.False(t, c.Contains(a))
	tassert.Equal(t, 3, a.Width())
	tassert.True(t, a.Before(c))
	tassert.True(t, c.Before(b))
}

func TestIntervalMaximum(t *testing.T) {
	var i Interval
	i.setMaximum()
	tassert.True(t, i.isMaximum())
	tassert.Equal(t, -1, i.OffsetBegin)
}
