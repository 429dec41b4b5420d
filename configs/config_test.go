package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigReadsEnvironment(t *testing.T) {
	t.Setenv("AUTOMATCH_TEST_KEY", "set")
	require.Equal(t, "set", Config("AUTOMATCH_TEST_KEY"))
}

func TestConfigOrFallsBack(t *testing.T) {
	t.Setenv("AUTOMATCH_TEST_KEY", "")
	require.Equal(t, "default", ConfigOr("AUTOMATCH_TEST_KEY", "default"))

	t.Setenv("AUTOMATCH_TEST_KEY", "explicit")
	require.Equal(t, "explicit", ConfigOr("AUTOMATCH_TEST_KEY", "default"))
}
