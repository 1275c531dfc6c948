package mock

import "github.com/veritext/veritext"

var _ veritext.Converter = (*Converter)(nil)

// Converter is a mock implementation of veritext.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
