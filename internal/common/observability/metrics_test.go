package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	"pbf-marketplace/internal/common/config"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_RecordSubmission(t *testing.T) {
	reg := promclient.NewRegistry()
	obs, err := New("pbf-marketplace-test", config.TracingConfig{}, reg)
	require.NoError(t, err)
	defer obs.Shutdown(context.Background())

	ctx, span := obs.StartSpan(context.Background(), "intake.submit")
	obs.RecordSubmission(ctx, "notified", 15*time.Millisecond)
	span.End()

	families, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, f := range families {
		if strings.Contains(f.GetName(), "submissions") {
			found = true
		}
	}
	assert.True(t, found, "submission counter not exported")
}

func TestObservability_NilReceiver(t *testing.T) {
	var obs *Observability

	ctx, span := obs.StartSpan(context.Background(), "noop")
	assert.NotNil(t, ctx)
	span.End()

	obs.RecordSubmission(context.Background(), "rejected", time.Millisecond)
	assert.NoError(t, obs.Shutdown(context.Background()))
}
