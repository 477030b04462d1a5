// Package codec encodes snapshot headers and run reports.
//
// A snapshot stores the Name of the codec that wrote its header, and the
// reader looks the codec up again with ByName.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Indenter is implemented by codecs that can pretty-print.
type Indenter interface {
	MarshalIndent(v any) ([]byte, error)
}

// Default is used for snapshot headers and reports when no codec is given.
var Default Codec = GoJSON{}

var builtin = []Codec{GoJSON{}, JSON{}}

// Names lists the built-in codec names, Default first.
func Names() []string {
	names := make([]string, len(builtin))
	for i, c := range builtin {
		names[i] = c.Name()
	}
	return names
}

// ByName returns the built-in codec called name.
func ByName(name string) (Codec, bool) {
	for _, c := range builtin {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Indent encodes v with c, indented when c is an Indenter. A nil c uses
// Default.
func Indent(c Codec, v any) ([]byte, error) {
	if c == nil {
		c = Default
	}
	var (
		b   []byte
		err error
	)
	if ind, ok := c.(Indenter); ok {
		b, err = ind.MarshalIndent(v)
	} else {
		b, err = c.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	return b, nil
}
