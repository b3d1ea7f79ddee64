package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(3)

	assert.Nil(t, h.Last(5))
	assert.Equal(t, 0, h.Len())
}

func TestHistory_LastOldestFirst(t *testing.T) {
	h := NewHistory(5)
	for _, v := range []float64{-60, -55, -50} {
		h.Push(v)
	}

	assert.Equal(t, []float64{-60, -55, -50}, h.Last(10))
	assert.Equal(t, []float64{-55, -50}, h.Last(2))
	assert.Nil(t, h.Last(0))
}

func TestHistory_Wraps(t *testing.T) {
	h := NewHistory(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		h.Push(v)
	}

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []float64{3, 4, 5}, h.Last(3))
	assert.Equal(t, []float64{5}, h.Last(1))
}

func TestNewHistory_DefaultSize(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < DefaultHistorySize+5; i++ {
		h.Push(float64(i))
	}

	assert.Equal(t, DefaultHistorySize, h.Len())
}
