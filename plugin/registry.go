package plugin

import "fmt"

// OutputOptions carries what any output factory may need
type OutputOptions struct {
	Path      string
	BatchSize int
}

// Outputs is a global map of ResultOutput plugins.
var Outputs = map[string]func(OutputOptions) (ResultOutput, error){
	"badger": func(o OutputOptions) (ResultOutput, error) {
		cfg := DefaultBadgerConfig(o.Path)
		cfg.BatchSize = o.BatchSize
		return NewBadgerStore(cfg)
	},
	"memory": func(OutputOptions) (ResultOutput, error) {
		return NewMemoryOutput(), nil
	},
}

// OutputLookup builds the named output
func OutputLookup(name string, o OutputOptions) (ResultOutput, error) {
	factory, ok := Outputs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOutput, name)
	}
	return factory(o)
}
