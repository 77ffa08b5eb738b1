// Package cgi holds the functions scripts may call via the "c" command. A function is
// identified by a single lowercase letter.
package cgi

import (
	"errors"
	"fmt"
)

// Func is called once when the script reaches the call line and then on every following
// event until it returns true. The acked flag reports whether the peer has acknowledged the
// outstanding data since the previous call.
type Func func(acked bool) bool

const (
	First = 'a'
	Last  = 'z'
	Size  = Last - First + 1
)

var (
	ErrBadLetter = errors.New("cgi: function letter must be in range a..z")
	ErrNilFunc   = errors.New("cgi: nil function")
)

// Table is a fixed-size letter-indexed set of functions. It must be fully populated before
// the server starts and is read-only afterwards.
type Table struct {
	funcs [Size]Func
}

func NewTable() *Table {
	return new(Table)
}

// Register binds the function to the letter, replacing the previous one, if any.
func (t *Table) Register(letter byte, fn Func) error {
	if !valid(letter) {
		return fmt.Errorf("%w: got %q", ErrBadLetter, letter)
	}

	if fn == nil {
		return ErrNilFunc
	}

	t.funcs[letter-First] = fn
	return nil
}

// MustRegister is like Register, except it panics on error.
func (t *Table) MustRegister(letter byte, fn Func) *Table {
	if err := t.Register(letter, fn); err != nil {
		panic(err)
	}

	return t
}

// Lookup returns the function bound to the letter. Letters out of range are never found.
func (t *Table) Lookup(letter byte) (Func, bool) {
	if t == nil || !valid(letter) {
		return nil, false
	}

	fn := t.funcs[letter-First]
	return fn, fn != nil
}

func valid(letter byte) bool {
	return letter >= First && letter <= Last
}
