package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/vaultbridge/hw-wallet/internal/util/command"
)

func TestNewSubcommandGroup(t *testing.T) {
	sub := command.NewSubcommandGroup("probe",
		command.NewSubcommandGroup("liveness"),
		command.NewSubcommandGroup("readiness"),
	)

	require.Equal(t, "probe", sub.Use)
	assert.Len(t, sub.Commands(), 2)
	assert.True(t, sub.HasSubCommands())
}
