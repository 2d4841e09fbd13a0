package cart

const (
	// MinQuantity is the floor for any quantity handed to Store.Add.
	MinQuantity = 1
	// MaxQuantity caps both the pending quantity and a merged line.
	MaxQuantity = 99
)

// QuantityControl is the pending quantity used by the next add-to-cart.
// It starts at 1 and is not reset by adding; a new session starts a new one.
type QuantityControl struct {
	value int
}

func NewQuantityControl() *QuantityControl {
	return &QuantityControl{value: MinQuantity}
}

// Change applies delta and clamps the result to [MinQuantity, MaxQuantity].
func (q *QuantityControl) Change(delta int) int {
	q.value = saturatingAdd(q.value, delta)
	return q.value
}

func (q *QuantityControl) Value() int {
	return q.value
}

// saturatingAdd returns base+delta clamped to the quantity bounds. base must
// already be within them, so the comparisons cannot overflow.
func saturatingAdd(base, delta int) int {
	switch {
	case delta > MaxQuantity-base:
		return MaxQuantity
	case delta < MinQuantity-base:
		return MinQuantity
	default:
		return base + delta
	}
}

func clampQuantity(n int) int {
	return min(MaxQuantity, max(MinQuantity, n))
}
