package op

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestMapArgs(t *testing.T) {
	args := MapArgs{"alpha": 0.1}

	assert.Equal(t, 0.1, args.Float("alpha", 0.005))
	assert.Equal(t, 1.0, args.Float("beta", 1.0))
}

func TestViperArgs(t *testing.T) {
	v := viper.New()
	v.Set("alpha", 0.25)

	args := NewViperArgs(v)
	assert.Equal(t, 0.25, args.Float("alpha", 0.005))
	assert.Equal(t, 0.001, args.Float("lambda1", 0.001))
}

func TestViperArgs_Defaults(t *testing.T) {
	v := viper.New()
	v.SetDefault("beta", 2.0)

	args := NewViperArgs(v)
	// viper's own defaults count as set values.
	assert.Equal(t, 2.0, args.Float("beta", 1.0))
}
