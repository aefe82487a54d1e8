// Package blocks composes many editing sessions into one page.
//
// Each top-level block of a page document is edited by its own
// session.Controller. The page reacts to the boundary signals those
// sessions raise: a split creates a sibling block after the current one, and
// a delete on an empty block removes it and focuses the block before it.
package blocks
