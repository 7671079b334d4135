package main

import "sort"

// idSet is a set of Twitter account ids.
type idSet map[int64]struct{}

func newIDSet(ids ...int64) idSet {
	s := make(idSet, len(ids))
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s idSet) add(id int64) { s[id] = struct{}{} }

func (s idSet) has(id int64) bool {
	_, ok := s[id]
	return ok
}

// minus returns the ids in s that are not in other.
func (s idSet) minus(other idSet) idSet {
	diff := idSet{}
	for id := range s {
		if !other.has(id) {
			diff.add(id)
		}
	}
	return diff
}

// sorted returns the members in ascending order.
func (s idSet) sorted() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
