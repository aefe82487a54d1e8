// Package posting publishes job postings whose description is written in an
// editor page.
//
// The job board, the session token store and the wallet are external
// services. They are reached only through the narrow interfaces declared
// here and are injected by the caller.
package posting
