package domain

import (
	"encoding/json"
	"time"
)

// Field enumerates the categorical record fields a filter can match on.
type Field string

const (
	FieldStaff          Field = "staff"
	FieldAccountManager Field = "accountManager"
	FieldJobManager     Field = "jobManager"
	FieldClientGroup    Field = "clientGroup"
)

// Flag enumerates the boolean record fields a filter can match on.
type Flag string

const (
	FlagBillable         Flag = "billable"
	FlagCapacityReducing Flag = "capacityReducing"
)

type FieldMatch struct {
	Field Field
	Value string
}

type FlagMatch struct {
	Flag  Flag
	Value bool
}

// RecordFilter is a conjunction of predicates applied by a record store before
// paging. The variant set is closed: a store switches over Field/Flag constants
// and an unhandled case is a compile-visible gap, not a silently dropped filter.
type RecordFilter struct {
	From   *time.Time
	To     *time.Time
	Fields []FieldMatch
	Flags  []FlagMatch
}

// WithRange returns a copy of the filter bounded to [from, to] inclusive.
func (f RecordFilter) WithRange(from, to time.Time) RecordFilter {
	f.From = &from
	f.To = &to
	return f
}

type rawFilter struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ParseFilters decodes a client-supplied JSON filter payload, an array of
// {type, value} objects. A malformed payload means "no filters". Entries with
// an unknown type are skipped.
func ParseFilters(payload string) RecordFilter {
	var filter RecordFilter
	if payload == "" {
		return filter
	}

	var raw []rawFilter
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return RecordFilter{}
	}

	for _, r := range raw {
		switch Field(r.Type) {
		case FieldStaff, FieldAccountManager, FieldJobManager, FieldClientGroup:
			filter.Fields = append(filter.Fields, FieldMatch{Field: Field(r.Type), Value: r.Value})
			continue
		}
		switch Flag(r.Type) {
		case FlagBillable, FlagCapacityReducing:
			filter.Flags = append(filter.Flags, FlagMatch{Flag: Flag(r.Type), Value: r.Value == "true"})
		}
	}

	return filter
}
