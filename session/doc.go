// Package session owns one live document and mediates every change to it.
//
// A Controller parses host markup, routes key presses through a KeyMap,
// runs command functions against its document, and reports what happened
// to the host through a Bridge. Events are delivered in the order the
// operations that caused them were invoked, including operations a host
// callback starts from inside another callback.
//
// A Controller is not safe for concurrent use.
package session
