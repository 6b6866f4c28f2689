package plan

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a plan from a YAML file
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open plan: %w", err)
	}
	defer f.Close()

	p, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func decode(r io.Reader) (*Plan, error) {
	p := &Plan{}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(p); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return p, nil
}
