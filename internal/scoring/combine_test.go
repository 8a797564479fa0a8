package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineFullPanel(t *testing.T) {
	c, err := Combine(map[Role]float64{
		RoleCEO:     5.0,
		RoleIntern1: 4.0,
		RoleIntern2: 3.0,
	})
	require.NoError(t, err)
	assert.InDelta(t, 4.25, c.Score, 1e-9)
	assert.InDelta(t, 1.0, c.Coverage, 1e-9)
	require.Len(t, c.Judges, 3)
	// Canonical panel ordering.
	assert.Equal(t, RoleCEO, c.Judges[0].Role)
	assert.Equal(t, RoleIntern1, c.Judges[1].Role)
	assert.Equal(t, RoleIntern2, c.Judges[2].Role)
}

func TestCombineRenormalizesPartialPanel(t *testing.T) {
	c, err := Combine(map[Role]float64{
		RoleIntern1: 4.0,
		RoleIntern2: 2.0,
	})
	require.NoError(t, err)
	// (0.25*4 + 0.25*2) / 0.5, not divided by the full panel weight.
	assert.InDelta(t, 3.0, c.Score, 1e-9)
	assert.InDelta(t, 0.5, c.Coverage, 1e-9)
}

func TestCombineSingleJudge(t *testing.T) {
	c, err := Combine(map[Role]float64{RoleCEO: 4.0})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, c.Score, 1e-9)
	assert.InDelta(t, 0.5, c.Coverage, 1e-9)
}

func TestCombineNoJudges(t *testing.T) {
	_, err := Combine(nil)
	assert.ErrorIs(t, err, ErrNoEvaluations)

	_, err = Combine(map[Role]float64{})
	assert.ErrorIs(t, err, ErrNoEvaluations)
}

func TestCombineIgnoresUnknownRoles(t *testing.T) {
	_, err := Combine(map[Role]float64{Role("guest"): 5.0})
	assert.ErrorIs(t, err, ErrNoEvaluations)
}

func TestRoleWeights(t *testing.T) {
	assert.Equal(t, 0.5, RoleCEO.Weight())
	assert.Equal(t, 0.25, RoleIntern1.Weight())
	assert.Equal(t, 0.25, RoleIntern2.Weight())

	assert.True(t, RoleCEO.Valid())
	assert.False(t, Role("guest").Valid())
}
