package op

import "github.com/spf13/viper"

// ArgSource reads named scalar configuration values with defaults. It is
// consulted exactly once, when an operator is constructed; the resulting
// hyperparameter block is immutable afterwards.
type ArgSource interface {
	// Float returns the value of the named argument, or def if the
	// argument is absent.
	Float(name string, def float64) float64
}

// MapArgs is an ArgSource backed by a plain map, for tests and embedding
// hosts that already hold parsed arguments.
type MapArgs map[string]float64

// Float implements ArgSource.
func (m MapArgs) Float(name string, def float64) float64 {
	if v, ok := m[name]; ok {
		return v
	}
	return def
}

// ViperArgs adapts a viper instance to ArgSource, so operator arguments
// can come from config files, environment variables or bound flags.
type ViperArgs struct {
	v *viper.Viper
}

// NewViperArgs wraps v. A nil v uses viper's global instance.
func NewViperArgs(v *viper.Viper) ViperArgs {
	if v == nil {
		v = viper.GetViper()
	}
	return ViperArgs{v: v}
}

// Float implements ArgSource.
func (a ViperArgs) Float(name string, def float64) float64 {
	if !a.v.IsSet(name) {
		return def
	}
	return a.v.GetFloat64(name)
}
