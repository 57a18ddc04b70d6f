// Package nn implements the review classifier: an embedding over token ids,
// flattened and reduced through one ReLU layer to a single sigmoid unit.
package nn

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

const (
	ModelVersion = 1

	lossEpsilon = 1e-7
)

type Config struct {
	VocabRows    int // distinct ids, pad included
	MaxLength    int
	EmbeddingDim int
	HiddenUnits  int
}

func (c Config) validate() error {
	if c.VocabRows < 2 || c.MaxLength < 1 || c.EmbeddingDim < 1 || c.HiddenUnits < 1 {
		return fmt.Errorf("[Model] invalid shape %+v", c)
	}
	return nil
}

// Model parameters are stored as flat row-major slices. A Model is not
// modified after training, so Predict is safe for concurrent use.
type Model struct {
	Version int
	Config

	Embedding []float64 // VocabRows x EmbeddingDim
	HiddenW   []float64 // HiddenUnits x (MaxLength*EmbeddingDim)
	HiddenB   []float64 // HiddenUnits
	OutW      []float64 // HiddenUnits
	OutB      []float64 // 1
}

// New initializes embeddings uniformly in [-0.05, 0.05], dense weights with
// Glorot-uniform and biases at zero.
func New(cfg Config, rng *rand.Rand) (*Model, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	m := zeroModel(cfg)

	for i := range m.Embedding {
		m.Embedding[i] = uniform(rng, 0.05)
	}
	flat := m.flatDim()
	hiddenLimit := math.Sqrt(6 / float64(flat+cfg.HiddenUnits))
	for i := range m.HiddenW {
		m.HiddenW[i] = uniform(rng, hiddenLimit)
	}
	outLimit := math.Sqrt(6 / float64(cfg.HiddenUnits+1))
	for i := range m.OutW {
		m.OutW[i] = uniform(rng, outLimit)
	}
	return m, nil
}

func zeroModel(cfg Config) *Model {
	flat := cfg.MaxLength * cfg.EmbeddingDim
	return &Model{
		Version:   ModelVersion,
		Config:    cfg,
		Embedding: make([]float64, cfg.VocabRows*cfg.EmbeddingDim),
		HiddenW:   make([]float64, cfg.HiddenUnits*flat),
		HiddenB:   make([]float64, cfg.HiddenUnits),
		OutW:      make([]float64, cfg.HiddenUnits),
		OutB:      make([]float64, 1),
	}
}

func uniform(rng *rand.Rand, limit float64) float64 {
	return (rng.Float64()*2 - 1) * limit
}

func (m *Model) flatDim() int {
	return m.MaxLength * m.EmbeddingDim
}

// params lists every parameter slice in a fixed order shared with gradients
// and optimizer state.
func (m *Model) params() [][]float64 {
	return [][]float64{m.Embedding, m.HiddenW, m.HiddenB, m.OutW, m.OutB}
}

// ParamCount is the total number of trainable weights.
func (m *Model) ParamCount() int {
	n := 0
	for _, p := range m.params() {
		n += len(p)
	}
	return n
}

// activations holds per-call buffers so the model itself stays read-only.
type activations struct {
	flat   []float64
	hidden []float64 // pre-activation
	relu   []float64
}

func (m *Model) newActivations() *activations {
	return &activations{
		flat:   make([]float64, m.flatDim()),
		hidden: make([]float64, m.HiddenUnits),
		relu:   make([]float64, m.HiddenUnits),
	}
}

// rowID clamps out-of-range ids to the OOV row and missing positions to pad.
func (m *Model) rowID(seq []int, pos int) int {
	if pos >= len(seq) {
		return 0
	}
	id := seq[pos]
	if id < 0 || id >= m.VocabRows {
		return 1
	}
	return id
}

func (m *Model) forward(seq []int, act *activations) float64 {
	d := m.EmbeddingDim
	for pos := 0; pos < m.MaxLength; pos++ {
		id := m.rowID(seq, pos)
		copy(act.flat[pos*d:(pos+1)*d], m.Embedding[id*d:(id+1)*d])
	}

	flat := m.flatDim()
	for h := 0; h < m.HiddenUnits; h++ {
		z := floats.Dot(m.HiddenW[h*flat:(h+1)*flat], act.flat) + m.HiddenB[h]
		act.hidden[h] = z
		act.relu[h] = math.Max(0, z)
	}

	return sigmoid(floats.Dot(m.OutW, act.relu) + m.OutB[0])
}

// Predict returns the positive-class probability for an encoded sequence.
func (m *Model) Predict(seq []int) float64 {
	return m.forward(seq, m.newActivations())
}

// accumulate runs one example forward and adds its gradients into grads.
// It returns the example's binary cross-entropy and the prediction.
func (m *Model) accumulate(seq []int, label float64, grads *Model, act *activations, dFlat []float64) (float64, float64) {
	p := m.forward(seq, act)

	dOut := p - label
	grads.OutB[0] += dOut
	floats.AddScaled(grads.OutW, dOut, act.relu)

	flat := m.flatDim()
	clear(dFlat)
	for h := 0; h < m.HiddenUnits; h++ {
		if act.hidden[h] <= 0 {
			continue
		}
		dz := dOut * m.OutW[h]
		grads.HiddenB[h] += dz
		floats.AddScaled(grads.HiddenW[h*flat:(h+1)*flat], dz, act.flat)
		floats.AddScaled(dFlat, dz, m.HiddenW[h*flat:(h+1)*flat])
	}

	d := m.EmbeddingDim
	for pos := 0; pos < m.MaxLength; pos++ {
		id := m.rowID(seq, pos)
		floats.Add(grads.Embedding[id*d:(id+1)*d], dFlat[pos*d:(pos+1)*d])
	}

	return BinaryCrossEntropy(p, label), p
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// BinaryCrossEntropy clips p away from 0 and 1 before taking logs.
func BinaryCrossEntropy(p, label float64) float64 {
	p = math.Min(math.Max(p, lossEpsilon), 1-lossEpsilon)
	return -(label*math.Log(p) + (1-label)*math.Log(1-p))
}
