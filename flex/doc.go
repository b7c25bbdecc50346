// Package flex implements the second stage of a FLEX paging protocol
// decoder: parsing a frame's Block Information Word and address/vector
// fields, tracking temporary-address groupings across frames within a
// 128-frame cycle, assembling fragmented alphanumeric messages, and handing
// completed messages to a Sink.
//
// Stage one -- bit synchronization, interleaving, and BCH/majority-vote
// error correction -- is an external collaborator represented here only by
// the WordValidator interface and the Frame it hands in; this package never
// touches a radio or a bitstream directly.
package flex
