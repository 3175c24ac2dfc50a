package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("DATA_DIR", "/srv/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde", in: "~", want: home},
		{name: "tilde path", in: "~/.neo4jqa/config.yaml", want: filepath.Join(home, ".neo4jqa", "config.yaml")},
		{name: "env var", in: "$DATA_DIR/sample.yaml", want: "/srv/data/sample.yaml"},
		{name: "braced env var", in: "${DATA_DIR}/seed//sample.yaml", want: "/srv/data/seed/sample.yaml"},
		{name: "tilde not at start", in: "/tmp/~/x", want: "/tmp/~/x"},
		{name: "trailing slash", in: "/tmp/data/", want: "/tmp/data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("NEO4JQA_HOME", "")

	got, err := ConfigPath("/etc/neo4jqa.yaml", "/unused")
	require.NoError(t, err)
	assert.Equal(t, "/etc/neo4jqa.yaml", got)

	got, err = ConfigPath("", "/opt/neo4jqa")
	require.NoError(t, err)
	assert.Equal(t, "/opt/neo4jqa/config.yaml", got)

	t.Setenv("NEO4JQA_HOME", "/var/lib/neo4jqa")
	got, err = ConfigPath("", "/opt/neo4jqa")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/neo4jqa/config.yaml", got)
}
