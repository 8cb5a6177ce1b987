// Package rrset translates record changes for a PowerDNS zone into PATCH
// payloads for the authoritative HTTP API.
//
// Overview
//   - Normalize turns a RecordInput (RawContent or RecordFields) into a wire Record.
//   - Format applies Normalize to every record of an RRsetInput and lets a
//     WireFormat shape the result for the active API version.
//   - Zone implements the mutation verbs Add, Update and Remove on top of Format.
//
// Wire formats
//   - Legacy (API version 0) has no RRset envelope on records: name, type and
//     ttl are stamped onto every record, and zone snapshots are flat record lists.
//   - Structured (API version 1 and later) nests records under their RRset.
//
// Add reads the zone, prepends the currently published records of each RRset
// to the requested ones and submits the result as a REPLACE. There is no
// locking: two concurrent Add calls for the same name and type can read the
// same state and the later write wins. Callers that need both contributions
// must serialize Add per RRset.
package rrset
