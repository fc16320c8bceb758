// Package convert drives the one-pass transduction from a recognized
// symbol stream to MEI documents and the optional flat **mens encoding.
// It owns all carried musical state: active clef, key, pending
// accidentals, ligature grouping, and mensuration.
package convert
