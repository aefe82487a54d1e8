// Package command maps editing intents to document mutations.
//
// Every operation is pure: it takes a document and a cursor (or range) and
// returns a Result holding the next document and cursor. Inputs are never
// modified. A Result with Changed == false is a no-op signal, not an error.
package command
