// Package notation parses Kumihan notation into a tree of [Node] values.
//
// A document is a sequence of lines. Marker blocks are delimited by an
// opening line of the form
//
//	#keyword#
//
// and a closing line "##". The inline form "#keyword#content##" opens and
// closes on one line. Keywords may be compounded with "+" (or "＋"), in
// which case the first keyword becomes the outermost node:
//
//	#太字+イタリック#強調##
//
// Lines outside marker blocks form paragraphs separated by blank lines; a
// paragraph whose first line is a list item ("-", "*", "+" or "1.") becomes
// a list. Lines starting with "//" outside marker blocks are comments.
//
// The [Coordinator] drives the pipeline: [BlockSegmenter] carves lines into
// blocks using the per-line [ClassifyLine], [KeywordExtractor] parses marker
// payloads, [NestedListParser] parses bracketed list items, and
// [NodeBuilder] produces nodes. Results are cached by content. Documents
// longer than [Config.ParallelThreshold] lines are split into chunks at
// block boundaries and processed by a bounded worker pool; the output is
// identical to a sequential parse.
//
// Parsing never fails on malformed input. Problems become error_block nodes
// and entries in [ParseResult.Errors] and [ParseResult.Warnings]. Only an
// invalid [Config] is rejected, with [ErrConfiguration].
package notation
