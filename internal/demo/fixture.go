package demo

import (
	"embed"
	"fmt"

	"github.com/pablasso/meetmind/internal/analysis"
)

//go:embed fixtures/analysis.v1.json
var embeddedFixtures embed.FS

// Document returns the embedded demo analysis document as the server would
// send it.
func Document() ([]byte, error) {
	data, err := embeddedFixtures.ReadFile("fixtures/analysis.v1.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded demo fixture: %w", err)
	}
	return data, nil
}

// LoadResult decodes the embedded demo analysis.
func LoadResult() (*analysis.Result, error) {
	data, err := Document()
	if err != nil {
		return nil, err
	}
	r, err := analysis.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse embedded demo fixture: %w", err)
	}
	return r, nil
}
