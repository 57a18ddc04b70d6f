package nn

// Batch is a reusable gradient accumulator for one mini-batch.
type Batch struct {
	model *Model
	grads *Model
	act   *activations
	dFlat []float64

	size int
	loss float64
	hits int
}

func (m *Model) NewBatch() *Batch {
	return &Batch{
		model: m,
		grads: zeroModel(m.Config),
		act:   m.newActivations(),
		dFlat: make([]float64, m.flatDim()),
	}
}

// Add accumulates one labeled example.
func (b *Batch) Add(seq []int, label int) {
	y := float64(label)
	loss, p := b.model.accumulate(seq, y, b.grads, b.act, b.dFlat)
	b.loss += loss
	if (p >= 0.5) == (label == 1) {
		b.hits++
	}
	b.size++
}

// Apply performs one optimizer step with the batch mean gradient and
// resets the accumulator. It returns summed loss and correct predictions.
func (b *Batch) Apply(opt *Adam) (float64, int) {
	loss, hits := b.loss, b.hits
	if b.size > 0 {
		opt.Step(b.model.params(), b.grads.params(), 1/float64(b.size))
	}
	for _, g := range b.grads.params() {
		clear(g)
	}
	b.size, b.loss, b.hits = 0, 0, 0
	return loss, hits
}
