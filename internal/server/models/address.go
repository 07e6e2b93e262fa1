package models

// Address belongs to exactly one contact and is never reassigned to a
// different one. All location fields are optional.
type Address struct {
	ID         int64
	Street     *string
	City       *string
	Province   *string
	Country    *string
	PostalCode *string
	ContactID  int64
}
