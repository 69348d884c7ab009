// Package symbols holds the batch symbol tables and the per-script lexical
// scopes.
//
// Tables is an arena of Table values owned by one compilation batch. A child
// table sees everything its parents define; writes only ever land in the
// table they are issued against, so a batch sub-table never pollutes the
// predefined root. Nothing in this package is safe for concurrent mutation:
// callers compiling batches in parallel must give each batch its own
// Tables or serialize access.
package symbols
