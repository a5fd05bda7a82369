// Package metro models a city metro network: colored lines of stations,
// transfers between lines, hop distances, fares, per-station sales ledgers and
// the monthly pass registry.
//
// The package does no I/O. Topology is built once and is read-only afterwards;
// ticket offices and the pass registry carry their own locks.
package metro
