package nn

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Save writes the model with encoding/gob. float64 values round-trip exactly.
func Save(path string, m *Model) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("[Model] failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf("[Model] failed to encode model: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("[Model] failed to sync %s: %w", path, err)
	}
	return nil
}

func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("[Model] failed to open %s: %w", path, err)
	}
	defer f.Close()

	var m Model
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("[Model] failed to decode %s: %w", path, err)
	}
	if err := m.checkShape(); err != nil {
		return nil, err
	}
	return &m, nil
}

// maxParams bounds the size a decoded header may claim.
const maxParams = 1 << 28

func (m *Model) checkShape() error {
	if m.Version != ModelVersion {
		return fmt.Errorf("[Model] unsupported model version %d", m.Version)
	}
	if err := m.Config.validate(); err != nil {
		return err
	}
	flat, ok := mulBounded(m.MaxLength, m.EmbeddingDim)
	if !ok {
		return fmt.Errorf("[Model] shape %+v exceeds %d parameters", m.Config, maxParams)
	}
	embedding, ok1 := mulBounded(m.VocabRows, m.EmbeddingDim)
	hidden, ok2 := mulBounded(m.HiddenUnits, flat)
	if !ok1 || !ok2 || embedding+hidden > maxParams-m.HiddenUnits*2-1 {
		return fmt.Errorf("[Model] shape %+v exceeds %d parameters", m.Config, maxParams)
	}

	want := []int{embedding, hidden, m.HiddenUnits, m.HiddenUnits, 1}
	for i, p := range m.params() {
		if len(p) != want[i] {
			return fmt.Errorf("[Model] parameter block %d has %d values, want %d", i, len(p), want[i])
		}
	}
	return nil
}

// mulBounded multiplies two positive ints, reporting false when the product
// exceeds maxParams.
func mulBounded(a, b int) (int, bool) {
	if a > maxParams || b > maxParams || a > maxParams/b {
		return 0, false
	}
	return a * b, true
}
