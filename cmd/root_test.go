package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"render", "inspect", "rules", "serve"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "geoviz", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRenderCommand_Flags(t *testing.T) {
	flag := renderCmd.Flags().Lookup("map")
	require.NotNil(t, flag, "render command should have --map flag")

	outFlag := renderCmd.Flags().Lookup("out")
	require.NotNil(t, outFlag, "render command should have --out flag")
	assert.Equal(t, "", outFlag.DefValue)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)

	mapFlag := serveCmd.Flags().Lookup("map")
	require.NotNil(t, mapFlag, "serve command should have --map flag")
}

func TestRulesCommand_HasValidate(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rulesCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["validate"], "rules should have a validate subcommand")
}
