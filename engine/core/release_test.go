package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReleaseStackUnwindsInReverse(t *testing.T) {
	var order []string
	rs := &ReleaseStack{}
	for _, name := range []string{"instance", "surface", "adapter", "device", "queue"} {
		name := name
		rs.Push(name, func() { order = append(order, name) })
	}
	assert.Equal(t, 5, rs.Len())

	rs.Release()
	assert.Equal(t, []string{"queue", "device", "adapter", "surface", "instance"}, order)
	assert.Equal(t, 0, rs.Len())

	rs.Release()
	assert.Len(t, order, 5, "second release must not call anything")
}

func TestReleaseStackEmpty(t *testing.T) {
	rs := &ReleaseStack{}
	assert.NotPanics(t, rs.Release)
}
