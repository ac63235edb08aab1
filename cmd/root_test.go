package cmd

import (
	"reflect"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// TestCLIHasAllSubcommands verifies that CLI exposes the expected
// subcommand fields with the expected types.
func TestCLIHasAllSubcommands(t *testing.T) {
	cli := &CLI{}
	val := reflect.ValueOf(cli).Elem()

	wantFields := map[string]string{
		"Tangle":     "TangleCmd",
		"Weave":      "WeaveCmd",
		"Reverse":    "ReverseCmd",
		"Lock":       "LockCmd",
		"Version":    "VersionCmd",
		"Completion": "Completion",
	}

	for name, typeName := range wantFields {
		field := val.FieldByName(name)
		assert.True(t, field.IsValid(), "CLI struct is missing field %q", name)
		assert.Equal(t, typeName, field.Type().Name())
	}
}

// TestSubcommandsHaveRunMethod verifies every subcommand type implements a
// Run(*CLI) error method, matching Kong's method-injection convention.
func TestSubcommandsHaveRunMethod(t *testing.T) {
	cmds := []interface {
		Run(*CLI) error
	}{
		&TangleCmd{},
		&WeaveCmd{},
		&ReverseCmd{},
		&LockCmd{},
		&VersionCmd{},
	}

	for _, c := range cmds {
		val := reflect.ValueOf(c)
		assert.True(t, val.MethodByName("Run").IsValid(), "%T has no Run method", c)
	}
}

func TestReverseCmdHasForceFlag(t *testing.T) {
	c := &ReverseCmd{}
	val := reflect.ValueOf(c).Elem()
	assert.True(t, val.FieldByName("Force").IsValid())
}
