// Package mei assembles the hierarchical MEI output: one document per
// boundary, with the mensural-white scaffold and typed musical elements
// appended in stream order. Serialization preserves attribute order, which
// encoding/xml struct tags cannot express for the optional attribute sets
// used here, so the package keeps its own small element tree.
package mei
