package notation

import (
	"fmt"
	"strings"
)

// Block is a contiguous run of source lines forming one structural unit.
// Start and End are zero-based, inclusive line indexes.
type Block struct {
	Lines []string
	Start int
	End   int
}

// Text returns the block lines joined by newlines.
func (b Block) Text() string { return strings.Join(b.Lines, "\n") }

// BlockType tags a block by the shape of its first line.
type BlockType int

const (
	BlockText            BlockType = iota // text_block
	BlockMarker                           // marker_block
	BlockNewFormatMarker                  // new_format_marker
	BlockList                             // list_block
)

// BlockSegmenter carves a line sequence into blocks.
//
// A marker block runs from an opening marker line to the closing line that
// brings its nesting depth back to zero; every line in between belongs to
// it. Outside marker blocks, non-blank lines form paragraphs separated by
// blank lines. Segmentation never fails: an unterminated block extends to
// the end of input and is reported by [BlockSegmenter.Validate].
type BlockSegmenter struct {
	lines *lineClassifier
}

// NewBlockSegmenter returns a segmenter whose line classification cache
// holds up to cacheSize entries.
func NewBlockSegmenter(cacheSize int) *BlockSegmenter {
	return &BlockSegmenter{lines: newLineClassifier(cacheSize)}
}

func (s *BlockSegmenter) classify(line string) LineInfo {
	if s == nil {
		return ClassifyLine(line)
	}

	return s.lines.classify(line)
}

// ExtractBlocks returns the text of each block in order.
func (s *BlockSegmenter) ExtractBlocks(lines []string) []string {
	blocks := s.Segment(lines)
	out := make([]string, len(blocks))

	for i, b := range blocks {
		out[i] = b.Text()
	}

	return out
}

// Segment splits lines into blocks in document order.
func (s *BlockSegmenter) Segment(lines []string) []Block {
	var (
		blocks []Block
		acc    []string
		start  int
		inside bool
		depth  int
	)

	flush := func(end int) {
		if len(acc) > 0 {
			blocks = append(blocks, Block{Lines: acc, Start: start, End: end})
		}

		acc = nil
	}

	for i, line := range lines {
		info := s.classify(line)

		if inside {
			acc = append(acc, line)

			switch {
			case info.Inline():
			case info.Opening:
				depth++
			case info.Closing:
				depth--
			}

			if depth == 0 {
				flush(i)

				inside = false
			}

			continue
		}

		switch {
		case info.Opening || info.Closing:
			// A new block always starts a fresh accumulator. Inline markers
			// and stray closers stand alone.
			flush(i - 1)

			start = i
			acc = []string{line}

			if info.Opening && !info.Closing {
				inside, depth = true, 1

				continue
			}

			flush(i)

		case info.Kind == LineBlank:
			flush(i - 1)

		case info.Kind == LineComment:

		default:
			if len(acc) == 0 {
				start = i
			}

			acc = append(acc, line)
		}
	}

	flush(len(lines) - 1)

	return blocks
}

// Balance counts the opening-only and closing-only marker lines of b.
// Inline marker lines are balanced on their own and count as neither.
func (s *BlockSegmenter) Balance(b Block) (opening, closing int) {
	for _, line := range b.Lines {
		info := s.classify(line)

		switch {
		case info.Inline():
		case info.Opening:
			opening++
		case info.Closing:
			closing++
		}
	}

	return opening, closing
}

// Validate reports blocks whose opening and closing marker counts differ.
// Line numbers in the messages are one-based.
func (s *BlockSegmenter) Validate(blocks []Block) []string {
	var out []string

	for i, b := range blocks {
		opening, closing := s.Balance(b)
		if opening == closing {
			continue
		}

		out = append(out, fmt.Sprintf(
			"block %d (line %d): %d opening and %d closing markers",
			i+1, b.Start+1, opening, closing,
		))
	}

	return out
}

// DetectBlockType classifies block text by its first line.
func DetectBlockType(block string) BlockType {
	first, _, _ := strings.Cut(block, "\n")

	return detectLineType(ClassifyLine(first))
}

func detectLineType(info LineInfo) BlockType {
	switch {
	case info.Inline():
		return BlockMarker
	case info.Opening:
		return BlockNewFormatMarker
	case info.ListItem:
		return BlockList
	default:
		return BlockText
	}
}
