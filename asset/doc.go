// Package asset loads immutable 3D asset templates for placement.
//
// A Template is the loaded definition of an asset; the placement loop never
// mutates it. Instantiate stamps out an independent scene node tree per
// placement. Loading is asynchronous by nature: the loop treats a template
// that has not arrived yet as "not ready" and placement stays disabled until
// the completion callback binds one. Prefetch mirrors the platform loader
// contract the loop was written against: it delivers on success and simply
// never delivers on failure.
package asset
