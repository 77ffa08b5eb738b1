// Package script parses the line-oriented page scripting language. Every line begins with a
// single command byte:
//
//	i /header.html   include a file from the store
//	t <h1>Hi</h1>    send the text up to the end of the line
//	c a              call the function bound to the letter
//	# comment        skipped
//	.                end of the script
//
// Lines are validated lazily: the parser never fails, instead broken lines are marked as
// Invalid and are rejected only if the interpreter ever reaches them.
package script

import (
	"bytes"
	"errors"
)

type Kind uint8

const (
	Invalid Kind = iota
	Include
	Text
	Call
	Comment
	End
)

func (k Kind) String() string {
	switch k {
	case Include:
		return "include"
	case Text:
		return "text"
	case Call:
		return "call"
	case Comment:
		return "comment"
	case End:
		return "end"
	default:
		return "invalid"
	}
}

var (
	ErrUnterminated = errors.New("script: line is not terminated")
	ErrBadCommand   = errors.New("script: unrecognized command")
	ErrNoEnd        = errors.New("script: advanced past the last line")
)

// Line is a single parsed script line. Arg references the original script bytes.
type Line struct {
	Kind Kind
	Arg  []byte
	// Err explains why the line is Invalid.
	Err error
}

// Letter returns the function letter of a call line.
func (l Line) Letter() byte {
	if len(l.Arg) == 0 {
		return 0
	}

	return l.Arg[0]
}

// Script is an immutable sequence of lines.
type Script struct {
	lines []Line
}

// Parse splits the script into lines. An unterminated trailing line is only accepted if it
// is the end marker.
func Parse(src []byte) Script {
	lines := make([]Line, 0, bytes.Count(src, []byte{'\n'})+1)

	for len(src) > 0 {
		nl := bytes.IndexByte(src, '\n')
		if nl == -1 {
			line := parseLine(src)
			if line.Kind != End {
				line = Line{Kind: Invalid, Arg: src, Err: ErrUnterminated}
			}

			lines = append(lines, line)
			break
		}

		lines = append(lines, parseLine(src[:nl]))
		src = src[nl+1:]
	}

	return Script{lines: lines}
}

func parseLine(line []byte) Line {
	if len(line) == 0 {
		return Line{Kind: Invalid, Err: ErrBadCommand}
	}

	switch line[0] {
	case '#':
		return Line{Kind: Comment, Arg: line[1:]}
	case '.':
		return Line{Kind: End}
	case 'i', 't', 'c':
	default:
		return Line{Kind: Invalid, Arg: line, Err: ErrBadCommand}
	}

	if len(line) < 2 || line[1] != ' ' {
		return Line{Kind: Invalid, Arg: line, Err: ErrBadCommand}
	}

	arg := line[2:]

	switch line[0] {
	case 'i':
		return Line{Kind: Include, Arg: arg}
	case 't':
		return Line{Kind: Text, Arg: arg}
	default:
		if len(arg) == 0 {
			return Line{Kind: Invalid, Arg: line, Err: ErrBadCommand}
		}

		return Line{Kind: Call, Arg: arg}
	}
}

// Len returns the number of lines.
func (s Script) Len() int {
	return len(s.lines)
}

// Line returns the line at the position. Positions out of range yield an Invalid line,
// so a script missing its end marker fails closed instead of running off its end.
func (s Script) Line(pos int) Line {
	if pos < 0 || pos >= len(s.lines) {
		return Line{Kind: Invalid, Err: ErrNoEnd}
	}

	return s.lines[pos]
}
