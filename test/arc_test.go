package architecture_test

import (
	"testing"

	"github.com/mstrYoda/go-arctest/pkg/arctest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayeredArchitecture(t *testing.T) {
	arch, err := arctest.New("../")
	require.NoError(t, err)

	err = arch.ParsePackages()
	require.NoError(t, err, "failed to parse packages")

	domainLayer, err := arctest.NewLayer("domain", `(internal/models|pkg/messaging)$`)
	require.NoError(t, err)

	appLayer, err := arctest.NewLayer("application",
		`internal/(services/(subscriptions|posts|email|uploads)|reporter)$`)
	require.NoError(t, err)

	infraLayer, err := arctest.NewLayer("infrastructure",
		`(internal/(repository/sqlite|emailer|producers|cache|metrics|config|services/logger)|pkg/logger)$`)
	require.NoError(t, err)

	userLayer, err := arctest.NewLayer("interface", `internal/handlers(/posts|/subscription)?$`)
	require.NoError(t, err)

	rootLayer, err := arctest.NewLayer("composition", `internal/app$`)
	require.NoError(t, err)

	layered := arch.NewLayeredArchitecture(domainLayer, appLayer, infraLayer, userLayer, rootLayer)

	// handlers only see services through interfaces they declare
	require.NoError(t, userLayer.DependsOnLayer(domainLayer))

	require.NoError(t, appLayer.DependsOnLayer(domainLayer))
	require.NoError(t, appLayer.DependsOnLayer(infraLayer))

	require.NoError(t, infraLayer.DependsOnLayer(domainLayer))

	for _, l := range []*arctest.Layer{domainLayer, appLayer, infraLayer, userLayer} {
		require.NoError(t, rootLayer.DependsOnLayer(l))
	}

	violations, err := layered.Check()
	require.NoError(t, err)

	assert.Empty(t, violations)
	for _, v := range violations {
		assert.Failf(t, "", "violation: %s", v)
	}
}
