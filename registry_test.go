package endpoints_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/endpoints"
)

// Registry tests share the package-level announcement registry, so they
// reset it and do not run in parallel with each other.

func TestAnnounce_registerDiscovered(t *testing.T) {
	endpoints.ResetAnnouncements()
	t.Cleanup(endpoints.ResetAnnouncements)

	endpoints.Announce("system", newEchoEndpoint)
	endpoints.Announce("users", func() *echoEndpoint { return &echoEndpoint{pattern: "/users"} })
	endpoints.Announce("users", func() *echoEndpoint { return &echoEndpoint{pattern: "/users/{id}"} })

	c := endpoints.NewContainer()
	require.NoError(t, endpoints.RegisterDiscovered(c, endpoints.Transient, "users"))
	assert.Equal(t, 4, c.Count(), "two users constructors, two registrations each")

	all := endpoints.NewContainer()
	require.NoError(t, endpoints.RegisterDiscovered(all, endpoints.Transient))
	assert.Equal(t, 6, all.Count(), "no module filter scans every announced module")
}

func TestRegisterDiscovered_zeroMatchesIsNoOp(t *testing.T) {
	endpoints.ResetAnnouncements()
	t.Cleanup(endpoints.ResetAnnouncements)

	c := endpoints.NewContainer()
	require.NoError(t, endpoints.RegisterDiscovered(c, endpoints.Transient, "nothing-here"))
	assert.Equal(t, 0, c.Count(), "scan with zero matches leaves the container unchanged")

	require.NoError(t, endpoints.RegisterDiscovered(c, endpoints.Transient))
	assert.Equal(t, 0, c.Count())
}

func TestAnnounce_panicsOnInvalidConstructor(t *testing.T) {
	endpoints.ResetAnnouncements()
	t.Cleanup(endpoints.ResetAnnouncements)

	assert.Panics(t, func() { endpoints.Announce("bad", newNotAnEndpoint) })
	assert.Panics(t, func() { endpoints.Announce("bad", newAbstract) })
	assert.Panics(t, func() { endpoints.Announce("bad", 42) })
}

func TestModules_sorted(t *testing.T) {
	endpoints.ResetAnnouncements()
	t.Cleanup(endpoints.ResetAnnouncements)

	endpoints.Announce("zebra", newEchoEndpoint)
	endpoints.Announce("alpha", newEchoEndpoint)

	assert.Equal(t, []string{"alpha", "zebra"}, endpoints.Modules())
}

func TestAnnounced_order(t *testing.T) {
	endpoints.ResetAnnouncements()
	t.Cleanup(endpoints.ResetAnnouncements)

	endpoints.Announce("m", newEchoEndpoint)
	endpoints.Announce("m", newEchoEndpoint)

	assert.Len(t, endpoints.Announced("m"), 2)
	assert.Empty(t, endpoints.Announced("other"))
}
