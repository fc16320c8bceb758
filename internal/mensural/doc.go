// Package mensural models the recognized symbol stream of a mensural
// notation source: the closed set of symbol variants, staves with their
// source labels, the fixed lexicon of pitch/clef/mensuration codes, and the
// clef-relative pitch resolution used by the converters.
package mensural
