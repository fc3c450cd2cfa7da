// Package hittest provides the per-frame surface query feeding the
// placement loop.
//
// A Source answers one question each frame: does the viewer's forward ray
// intersect an estimated real-world surface right now, and if so at what
// pose? Absence of a surface is a normal result, not an error, and nothing
// is retained between queries — each frame naturally re-attempts detection.
//
// On a real device the query is answered by the platform runtime. This
// package ships a software PlaneSet source that answers it from a set of
// detected planes, which is enough for simulation, demos, and tests.
// Additional source backends can register themselves via Register.
package hittest
