package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(n int) Sample {
	return Sample{Latency: time.Duration(n) * time.Millisecond}
}

func TestRingPartialFill(t *testing.T) {
	r := newRing(5)
	r.push(ms(1))
	r.push(ms(2))

	got := r.all()
	require.Len(t, got, 2)
	assert.Equal(t, ms(1), got[0])
	assert.Equal(t, ms(2), got[1])
}

func TestRingWrapAround(t *testing.T) {
	r := newRing(3)
	for i := 1; i <= 5; i++ {
		r.push(ms(i))
	}

	got := r.all()
	require.Len(t, got, 3)
	assert.Equal(t, []Sample{ms(3), ms(4), ms(5)}, got)
}

func TestRingLast(t *testing.T) {
	r := newRing(4)
	for i := 1; i <= 4; i++ {
		r.push(ms(i))
	}

	assert.Equal(t, []Sample{ms(3), ms(4)}, r.last(2))
	assert.Equal(t, []Sample{ms(1), ms(2), ms(3), ms(4)}, r.last(10))
	assert.Nil(t, r.last(0))
}

func TestRingEmpty(t *testing.T) {
	r := newRing(3)
	assert.Nil(t, r.all())
	assert.Nil(t, r.last(2))
}
