package mock

import "github.com/fwojciec/kakudump"

var _ kakudump.Converter = (*Converter)(nil)

// Converter is a mock implementation of kakudump.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
