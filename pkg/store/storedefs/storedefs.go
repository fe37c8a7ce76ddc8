// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoPick is returned by DelPick when the list has no such item.
var ErrNoPick = errors.New("no such pick")

// Store is an interface satisfied by the storage service.
type Store interface {
	// AddPick records that item was picked from the named list. All other
	// picks of the list decay.
	AddPick(list, item string) error
	// DelPick removes the record of item from the named list.
	DelPick(list, item string) error
	// Picks returns the picks of the named list with the highest score
	// first. An unknown list has no picks.
	Picks(list string) ([]Pick, error)
	// Lists returns the names of all lists with picks.
	Lists() ([]string, error)
}

// Pick is an entry in the pick history of a list.
type Pick struct {
	Item  string
	Score float64
}
