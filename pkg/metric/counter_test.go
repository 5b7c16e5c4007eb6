package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestActivationCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewActivationCounter(reg)

	c.Increment("open_file", "emitted")
	c.Increment("open_file", "emitted")
	c.Increment("other", "ignored")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Vec().WithLabelValues("open_file", "emitted")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.Vec()))

	assert.Panics(t, func() { NewActivationCounter(reg) })
}

func TestNoop(t *testing.T) {
	var c IncrementalCounter = Noop{}
	assert.NotPanics(t, func() { c.Increment("a", "b") })
}
