package entity

import "testing"

// Arena pool vs an ID-keyed map of pointers, the layout the pool replaced.
// Sizes are far above the real caps so the access pattern dominates.

const benchN = 4096

func benchPool() *Pool {
	p := NewPool(benchN)
	for i := 0; i < benchN; i++ {
		c := NewCombatant(ID(i+1), RoleOpponent, float64(i), 0, 50)
		c.Vel = Vec2{X: 1, Y: 1}
		if i%4 == 0 {
			c.Health = 0
		}
		p.Add(c)
	}
	return p
}

func benchMap() map[ID]*Combatant {
	m := make(map[ID]*Combatant, benchN)
	for i := 0; i < benchN; i++ {
		c := NewCombatant(ID(i+1), RoleOpponent, float64(i), 0, 50)
		c.Vel = Vec2{X: 1, Y: 1}
		if i%4 == 0 {
			c.Health = 0
		}
		m[c.ID] = &c
	}
	return m
}

// position += velocity over every live combatant
func BenchmarkIntegrate_Pool(b *testing.B) {
	p := benchPool()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := 0; i < p.Len(); i++ {
			c := p.At(i)
			c.Pos.X += c.Vel.X
			c.Pos.Y += c.Vel.Y
		}
	}
}

func BenchmarkIntegrate_Map(b *testing.B) {
	m := benchMap()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for _, c := range m {
			c.Pos.X += c.Vel.X
			c.Pos.Y += c.Vel.Y
		}
	}
}

// the spawn cap and clear checks count living combatants every tick
func BenchmarkCountAlive_Pool(b *testing.B) {
	p := benchPool()
	b.ResetTimer()
	var sum int
	for n := 0; n < b.N; n++ {
		sum = p.CountAlive()
	}
	_ = sum
}

func BenchmarkCountAlive_Map(b *testing.B) {
	m := benchMap()
	b.ResetTimer()
	var sum int
	for n := 0; n < b.N; n++ {
		sum = 0
		for _, c := range m {
			if c.Health > 0 {
				sum++
			}
		}
	}
	_ = sum
}
