package verbosity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, v := range []Verbosity{Top, Closest, All} {
		got, err := Parse(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	_, err := Parse("some")
	assert.Error(t, err)
	assert.Equal(t, "verbosity(7)", Verbosity(7).String())
}
