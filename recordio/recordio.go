// Package recordio exports and imports frame recordings as YAML.
package recordio

import (
	"fmt"
	"io"
	"os"

	"github.com/plus3/bitshadow/shadow"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a recording.
type File struct {
	Session string               `yaml:"session,omitempty"`
	Frames  []shadow.FrameRecord `yaml:"frames"`
}

// Encode writes records to w.
func Encode(w io.Writer, session string, records []shadow.FrameRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(File{Session: session, Frames: records}); err != nil {
		return fmt.Errorf("encode recording: %w", err)
	}
	return enc.Close()
}

// Decode reads a recording from r.
func Decode(r io.Reader) (*File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode recording: %w", err)
	}
	return &f, nil
}

// Write saves records to path.
func Write(path, session string, records []shadow.FrameRecord) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(out, session, records); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Read loads a recording from path.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recording %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse recording %s: %w", path, err)
	}
	return &f, nil
}
