package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservas/entities"
)

func TestTableConfigs(t *testing.T) {
	configs := entities.TableConfigs()
	require.Len(t, configs, 5)

	assert.Equal(t, "1 Mesa / 6 cadeiras", configs[0].Label())
	assert.Equal(t, "2 Mesas / 12 cadeiras", configs[1].Label())
	assert.Equal(t, "5 Mesas / 30 cadeiras", configs[4].Label())

	for _, config := range configs {
		assert.True(t, config.Valid())
		assert.Equal(t, int(config)*entities.SeatsPerTable, config.Seats())
	}
}

func TestParseTableConfig(t *testing.T) {
	config, ok := entities.ParseTableConfig("3 Mesas / 18 cadeiras")
	require.True(t, ok)
	assert.Equal(t, entities.TableConfig(3), config)

	for _, label := range []string{
		"",
		"6 Mesas / 36 cadeiras",
		"2 mesas / 12 cadeiras",
		"2 Mesas / 13 cadeiras",
		"uma mesa",
	} {
		_, ok := entities.ParseTableConfig(label)
		assert.False(t, ok, "label %q must not parse", label)
	}
}
