package hostsim

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/midinotify/midinotify-go/pkg/object"
)

// Script operations.
const (
	OpAdd                = "add"
	OpRemove             = "remove"
	OpSetString          = "set_string"
	OpSetInteger         = "set_integer"
	OpIOError            = "io_error"
	OpSetupChanged       = "setup_changed"
	OpThruChanged        = "thru_changed"
	OpSerialOwnerChanged = "serial_owner_changed"
	OpRaw                = "raw"
)

// Step is one scripted host action. Objects are named by ID so later steps
// can refer to them.
type Step struct {
	Op       string `yaml:"op"`
	ID       string `yaml:"id,omitempty"`
	Parent   string `yaml:"parent,omitempty"`
	Kind     string `yaml:"kind,omitempty"`
	Name     string `yaml:"name,omitempty"`
	Property string `yaml:"property,omitempty"`
	Value    string `yaml:"value,omitempty"`
	Int      int32  `yaml:"int,omitempty"`
	Code     int32  `yaml:"code,omitempty"`
	Hex      string `yaml:"hex,omitempty"`
}

// Script is an ordered list of steps.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// LoadScript parses a YAML script.
func LoadScript(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &s, nil
}

// Run executes the steps against h in order and stops at the first error.
func (s *Script) Run(h *Host) error {
	ids := make(map[string]object.Ref)
	resolve := func(id string) (object.Ref, error) {
		if id == "" {
			return 0, nil
		}
		ref, ok := ids[id]
		if !ok {
			return 0, fmt.Errorf("unknown object id %q", id)
		}
		return ref, nil
	}

	for i, st := range s.Steps {
		if err := s.runStep(h, st, ids, resolve); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
	}
	return nil
}

func (s *Script) runStep(h *Host, st Step, ids map[string]object.Ref, resolve func(string) (object.Ref, error)) error {
	switch st.Op {
	case OpAdd:
		parent, err := resolve(st.Parent)
		if err != nil {
			return err
		}
		kind, err := object.ParseKind(strings.ToUpper(st.Kind))
		if err != nil {
			return err
		}
		ref, err := h.AddObject(parent, kind, st.Name)
		if err != nil {
			return err
		}
		if st.ID != "" {
			ids[st.ID] = ref
		}
		return nil
	case OpRemove:
		ref, err := resolve(st.ID)
		if err != nil {
			return err
		}
		delete(ids, st.ID)
		return h.RemoveObject(ref)
	case OpSetString:
		ref, err := resolve(st.ID)
		if err != nil {
			return err
		}
		return h.SetString(ref, st.Property, st.Value)
	case OpSetInteger:
		ref, err := resolve(st.ID)
		if err != nil {
			return err
		}
		return h.SetInteger(ref, st.Property, st.Int)
	case OpIOError:
		ref, err := resolve(st.ID)
		if err != nil {
			return err
		}
		return h.ReportIOError(ref, st.Code)
	case OpSetupChanged:
		return h.SetupChanged()
	case OpThruChanged:
		return h.ThruConnectionsChanged()
	case OpSerialOwnerChanged:
		return h.SerialPortOwnerChanged()
	case OpRaw:
		buf, err := hex.DecodeString(strings.ReplaceAll(st.Hex, " ", ""))
		if err != nil {
			return fmt.Errorf("bad hex: %w", err)
		}
		h.Emit(buf)
		return nil
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
}
