package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dungeon-api/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID(idgen.DungeonPrefix)

	a, b := gen.Generate(), gen.Generate()
	assert.NotEqual(t, a, b)
	require.True(t, strings.HasPrefix(a, "dgn_"))

	_, err := uuid.Parse(strings.TrimPrefix(a, "dgn_"))
	assert.NoError(t, err)

	_, err = uuid.Parse(idgen.NewUUID("").Generate())
	assert.NoError(t, err)
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("dgn")
	assert.Equal(t, "dgn_1", gen.Generate())
	assert.Equal(t, "dgn_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}
