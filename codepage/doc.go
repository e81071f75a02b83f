// Package codepage maps numeric single-byte codepage identifiers to the
// UCS-side converter names used to open transcoding sessions.
//
// # Converter Specs
//
// Resolve produces a Spec: the canonical UCS codepage name followed by fixed
// routing parameters requesting table-driven conversion:
//
//	spec, err := codepage.Resolve(850)
//	spec.String() // "IBM-850@map=cdra,path=no"
//
// Unknown identifiers fail with errors.ResolverFailed. Callers surface that
// to the user and abort before touching the clipboard or the edit control.
//
// # Active Codepage
//
// The active codepage is process-wide and may change between operations, so
// pipelines query a Source before every conversion instead of caching it:
//
//	active := codepage.NewActive(850)
//	active.Set(1252)
//	active.Codepage() // 1252
package codepage
