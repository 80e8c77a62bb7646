package domain

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// OrderKey carries the fields that decide catalog order.
type OrderKey struct {
	Flagship bool
	Rank     *int
	Provider string
	Name     string
}

// OrderKey returns the ordering fields of a record.
func (m ModelRecord) OrderKey() OrderKey {
	return OrderKey{Flagship: m.Flagship, Rank: m.Rank, Provider: m.Provider, Name: m.Name}
}

// OrderKey returns the ordering fields of a ranked model.
func (m RankedModel) OrderKey() OrderKey {
	return OrderKey{Flagship: m.Flagship, Rank: m.Rank, Provider: m.Provider, Name: m.Name}
}

// Ordering compares models by flagship, rank presence, rank value,
// provider and name. A Collator is not safe for concurrent use, so each
// goroutine needs its own Ordering.
type Ordering struct {
	coll *collate.Collator
}

// NewOrdering returns an Ordering with case-insensitive English collation.
func NewOrdering() *Ordering {
	return &Ordering{coll: collate.New(language.English, collate.IgnoreCase)}
}

// Compare returns a negative number when a sorts before b, a positive
// number when b sorts before a, and zero when the keys are equivalent.
func (o *Ordering) Compare(a, b OrderKey) int {
	if a.Flagship != b.Flagship {
		if a.Flagship {
			return -1
		}
		return 1
	}

	switch {
	case a.Rank != nil && b.Rank != nil:
		if *a.Rank != *b.Rank {
			if *a.Rank < *b.Rank {
				return -1
			}
			return 1
		}
	case a.Rank != nil:
		return -1
	case b.Rank != nil:
		return 1
	}

	if c := o.coll.CompareString(a.Provider, b.Provider); c != 0 {
		return c
	}
	return o.coll.CompareString(a.Name, b.Name)
}
