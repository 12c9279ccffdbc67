// Package yaml provides machine-readable YAML output
package yaml

import (
	"io"

	"github.com/mp3curate/mp3curate/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Renderer writes each result as its own YAML document
type Renderer struct {
	output  io.Writer
	encoder *yaml.Encoder
}

// New creates a new YAML renderer
func New(output io.Writer) (*Renderer, error) {
	encoder := yaml.NewEncoder(output)
	encoder.SetIndent(2)
	return &Renderer{
		output:  output,
		encoder: encoder,
	}, nil
}

// RenderResult renders any result type as YAML
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

// RenderError renders an error as YAML
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{
		"error": err.Error(),
		"code":  string(errors.GetErrorCode(err)),
	})
}

// RenderMessage renders a simple message as YAML
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
