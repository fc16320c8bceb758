// Package humdrum assembles the flat **mens encoding that parallels the
// MEI output. The buffer is line-oriented; the most recently appended line
// stays mutable until the next append, which is how augmentation dots and
// mensuration proportions merge into already-emitted lines.
package humdrum
