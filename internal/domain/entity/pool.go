package entity

// Pool is a fixed-capacity arena of combatants.
// Removal swaps the last live element into the freed slot, so indices are
// not stable across a removal.
type Pool struct {
	items []Combatant
	n     int
}

// NewPool allocates a pool with the given capacity
func NewPool(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool{items: make([]Combatant, capacity)}
}

// Cap returns the fixed capacity
func (p *Pool) Cap() int { return len(p.items) }

// Len returns the live count
func (p *Pool) Len() int { return p.n }

// Full reports whether no slot is free
func (p *Pool) Full() bool { return p.n >= len(p.items) }

// Add appends a combatant and returns its index, or -1 when full
func (p *Pool) Add(c Combatant) int {
	if p.Full() {
		return -1
	}
	p.items[p.n] = c
	p.n++
	return p.n - 1
}

// At returns the combatant at index i, or nil when i is not live
func (p *Pool) At(i int) *Combatant {
	if p == nil || i < 0 || i >= p.n {
		return nil
	}
	return &p.items[i]
}

// Resolve returns the combatant referenced by a grab reference when the
// index is live and still carries the same ID
func (p *Pool) Resolve(ref GrabRef) *Combatant {
	c := p.At(ref.Index)
	if c == nil || c.ID != ref.ID {
		return nil
	}
	return c
}

// Remove swap-removes index i
func (p *Pool) Remove(i int) bool {
	if i < 0 || i >= p.n {
		return false
	}
	last := p.n - 1
	if i != last {
		p.items[i] = p.items[last]
	}
	p.items[last] = Combatant{}
	p.n--
	return true
}

// Live returns the live prefix of the arena. The slice aliases pool storage
// and is invalidated by Add or Remove.
func (p *Pool) Live() []Combatant {
	return p.items[:p.n]
}

// CountAlive returns how many live combatants still have health
func (p *Pool) CountAlive() int {
	n := 0
	for i := 0; i < p.n; i++ {
		if p.items[i].Health > 0 {
			n++
		}
	}
	return n
}

// Reset drops every combatant
func (p *Pool) Reset() {
	for i := range p.items[:p.n] {
		p.items[i] = Combatant{}
	}
	p.n = 0
}
