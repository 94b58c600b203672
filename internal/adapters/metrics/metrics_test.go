package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRegistration(t *testing.T) {
	m := New()

	m.RecordRegistration("join", true)
	m.RecordRegistration("join", false)
	m.RecordRegistration("join", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.registrations.WithLabelValues("join", "created")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.registrations.WithLabelValues("join", "existing")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.registrations.WithLabelValues("attend", "created")))
}
