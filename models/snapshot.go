package models

import "time"

// Snapshot is the full state of customers, works and payments at one point in
// time. Works and payments are stored most recent first.
type Snapshot struct {
	Customers   []Customer `json:"customers"`
	Works       []WorkItem `json:"works"`
	Payments    []Payment  `json:"payments"`
	LastUpdated time.Time  `json:"lastUpdated,omitempty"`
}

// Clone returns a copy that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Customers:   append([]Customer(nil), s.Customers...),
		Works:       append([]WorkItem(nil), s.Works...),
		Payments:    append([]Payment(nil), s.Payments...),
		LastUpdated: s.LastUpdated,
	}
}

// Empty returns a snapshot with non-nil, empty collections.
func Empty() Snapshot {
	return Snapshot{
		Customers: []Customer{},
		Works:     []WorkItem{},
		Payments:  []Payment{},
	}
}
