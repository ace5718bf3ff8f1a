package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/research-assistant/pkg/types"
)

func TestObserveSource(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.ObserveSource(types.SourceWeb, 3)
	r.ObserveSource(types.SourceWeb, 2)
	r.ObserveSource(types.SourcePapers, 0)

	assert.Equal(t, 5.0, testutil.ToFloat64(r.documents.WithLabelValues("web")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.empty.WithLabelValues("web")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.empty.WithLabelValues("papers")))
}

func TestObserveQuery(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.ObserveQuery(OutcomeAnswered, 2*time.Second)
	r.ObserveQuery(OutcomeNoInfo, time.Second)
	r.ObserveQuery(OutcomeAnswered, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.queries.WithLabelValues(OutcomeAnswered)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.queries.WithLabelValues(OutcomeNoInfo)))
	assert.Equal(t, 2, testutil.CollectAndCount(r.duration))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveSource(types.SourceEncyclopedia, 1)
		r.ObserveQuery(OutcomeFailed, time.Second)
	})
}
