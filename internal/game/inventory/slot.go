package inventory

// Slot pairs a weapon with its visibility flag. The rendering layer reads
// Enabled; only the Selector writes it.
type Slot struct {
	Weapon  Weapon
	Enabled bool
}

// SlotView is a read-only copy of one slot at its position in the collection.
type SlotView struct {
	Index   int
	Weapon  Weapon
	Enabled bool
}
