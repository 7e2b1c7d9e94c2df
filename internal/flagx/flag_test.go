package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-a", "-g", "-d", "-s"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"separate values", []string{"-a", ":3000", "-x", "1", "-s", "k"}, serverFlags, []string{"-a", ":3000", "-s", "k"}},
		{"equals form", []string{"-d=postgres://db", "-env=.env"}, serverFlags, []string{"-d=postgres://db"}},
		{"cli subcommand args are dropped", []string{"create-admin", "-u", "owner", "-e", "o@x.io"}, serverFlags, []string{}},
		{"trailing flag without value", []string{"-g"}, serverFlags, []string{"-g"}},
		{"dash token is not a value", []string{"-c", "-a", ":1"}, []string{"-c", "-a"}, []string{"-c", "-a", ":1"}},
		{"repeats keep order", []string{"-c", "one.json", "-config=two.json", "-c", "three.json"}, []string{"-c", "-config"}, []string{"-c", "one.json", "-config=two.json", "-c", "three.json"}},
		{"empty", []string{}, serverFlags, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	cases := map[string]struct {
		args []string
		want string
	}{
		"short":     {[]string{"server", "-c", "/etc/catalog/short.json"}, "/etc/catalog/short.json"},
		"long":      {[]string{"server", "-config", "/etc/catalog/long.json"}, "/etc/catalog/long.json"},
		"absent":    {[]string{"server", "-a", ":3000"}, ""},
		"last wins": {[]string{"server", "-c", "1.json", "-config", "2.json"}, "2.json"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			os.Args = c.args
			assert.Equal(t, c.want, JsonConfigFlags())
		})
	}
}

func TestStringFlag(t *testing.T) {
	args := []string{"-a", ":3000", "-env", "prod.env", "-s", "secret"}

	assert.Equal(t, "prod.env", StringFlag(args, "env"))
	assert.Equal(t, ":3000", StringFlag(args, "a"))
	assert.Empty(t, StringFlag(args, "missing"))
	assert.Equal(t, "x.env", StringFlag([]string{"-env=x.env"}, "env"))
}

func TestEnvFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-env", "/etc/catalog/.env", "-c", "cfg.json"}
	assert.Equal(t, "/etc/catalog/.env", EnvFileFlag())
	assert.Equal(t, "cfg.json", JsonConfigFlags())
}
