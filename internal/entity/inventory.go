package entity

import "sort"

// Inventory is a multiset of item identifiers.
type Inventory map[string]int

// Stack is one inventory entry.
type Stack struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// Count returns how many of item are owned.
func (inv Inventory) Count(item string) int {
	return inv[item]
}

// Has reports whether at least one item is owned.
func (inv Inventory) Has(item string) bool {
	return inv[item] > 0
}

// Add stores n more of item. Callers must assign the result when inv is nil.
func (inv Inventory) Add(item string, n int) Inventory {
	if n <= 0 {
		return inv
	}
	if inv == nil {
		inv = Inventory{}
	}
	inv[item] += n
	return inv
}

// Remove takes n of item, returning false and changing nothing when fewer
// are owned.
func (inv Inventory) Remove(item string, n int) bool {
	if n <= 0 || inv[item] < n {
		return false
	}
	inv[item] -= n
	if inv[item] == 0 {
		delete(inv, item)
	}
	return true
}

// Stacks returns the contents sorted by item identifier.
func (inv Inventory) Stacks() []Stack {
	stacks := make([]Stack, 0, len(inv))
	for item, count := range inv {
		if count > 0 {
			stacks = append(stacks, Stack{Item: item, Count: count})
		}
	}
	sort.Slice(stacks, func(i, j int) bool { return stacks[i].Item < stacks[j].Item })
	return stacks
}

// Clone returns an independent copy.
func (inv Inventory) Clone() Inventory {
	c := make(Inventory, len(inv))
	for item, count := range inv {
		c[item] = count
	}
	return c
}
