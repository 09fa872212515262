package svgpath

import (
	"fmt"
	"strconv"

	"github.com/samuraislice/slicer/internal/geom"
	"github.com/samuraislice/slicer/internal/logging"
)

// Parse reads M, C and Z commands (absolute or relative) from d.
// Relative coordinates are resolved against the previous endpoint, so
// every returned command is absolute and carries a fresh id.
//
// Parsing never fails: unknown letters, stray numbers and commands with
// missing operands are skipped, and a Z with no preceding M is ignored.
// A bad path yields a partial or empty contour. Use ParseStrict to
// reject anything that is not a closed contour.
func Parse(d string) *Path {
	s := &scanner{src: d}
	log := logging.Logger()

	var (
		cmds     []*Command
		cur      geom.Point
		subStart geom.Point
		haveMove bool
	)

	for {
		letter, ok := s.nextCommand()
		if !ok {
			break
		}
		relative := letter >= 'a' && letter <= 'z'

		switch letter {
		case 'M', 'm':
			pt, ok := s.pair()
			if !ok {
				log.Debug("skip moveto without coordinates", "offset", s.pos)
				continue
			}
			if relative {
				pt = cur.Add(pt)
			}
			cmds = append(cmds, NewMoveTo(pt))
			cur, subStart, haveMove = pt, pt, true

		case 'C', 'c':
			for n := 0; ; n++ {
				if n > 0 && !s.peekNumber() {
					break
				}
				c1, ok1 := s.pair()
				c2, ok2 := s.pair()
				end, ok3 := s.pair()
				if !ok1 || !ok2 || !ok3 {
					log.Debug("skip curveto with missing operands", "offset", s.pos)
					break
				}
				if relative {
					c1, c2, end = cur.Add(c1), cur.Add(c2), cur.Add(end)
				}
				cmds = append(cmds, NewCurveTo(cur, c1, c2, end))
				cur = end
			}

		case 'Z', 'z':
			if !haveMove {
				log.Debug("skip closepath without moveto", "offset", s.pos)
				continue
			}
			cmds = append(cmds, NewClosePath(subStart))
			cur = subStart

		default:
			log.Debug("skip unsupported path command", "command", string(letter), "offset", s.pos)
		}
	}

	return &Path{cmds: cmds}
}

// ParseStrict parses d and validates the result as one closed contour.
func ParseStrict(d string) (*Path, error) {
	p := Parse(d)
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("parse path %q: %w", d, err)
	}
	return p, nil
}

// scanner tokenises SVG path data.
type scanner struct {
	src string
	pos int
}

func isSep(c byte) bool {
	return c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (s *scanner) skipSeps() {
	for s.pos < len(s.src) && isSep(s.src[s.pos]) {
		s.pos++
	}
}

// nextCommand advances to the next command letter, discarding stray
// numbers and junk on the way.
func (s *scanner) nextCommand() (byte, bool) {
	for {
		s.skipSeps()
		if s.pos >= len(s.src) {
			return 0, false
		}
		c := s.src[s.pos]
		switch {
		case isLetter(c):
			s.pos++
			return c, true
		case s.peekNumber():
			start := s.pos
			if _, ok := s.number(); !ok {
				s.pos = start + 1
			}
			logging.Logger().Debug("skip stray path number", "token", s.src[start:s.pos], "offset", start)
		default:
			s.pos++
		}
	}
}

// peekNumber reports whether a number starts after any separators.
func (s *scanner) peekNumber() bool {
	i := s.pos
	for i < len(s.src) && isSep(s.src[i]) {
		i++
	}
	if i >= len(s.src) {
		return false
	}
	c := s.src[i]
	if c == '+' || c == '-' {
		i++
		if i >= len(s.src) {
			return false
		}
		c = s.src[i]
	}
	if c == '.' {
		return i+1 < len(s.src) && isDigit(s.src[i+1])
	}
	return isDigit(c)
}

// number reads one float. A second '.' or a sign starts the next number,
// so "0.5.5" is two numbers and "1-2" is 1 and -2.
func (s *scanner) number() (float64, bool) {
	s.skipSeps()
	start := s.pos
	i := s.pos
	if i < len(s.src) && (s.src[i] == '+' || s.src[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s.src) && isDigit(s.src[i]) {
		i++
		digits++
	}
	if i < len(s.src) && s.src[i] == '.' {
		i++
		for i < len(s.src) && isDigit(s.src[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if i < len(s.src) && (s.src[i] == 'e' || s.src[i] == 'E') {
		j := i + 1
		if j < len(s.src) && (s.src[j] == '+' || s.src[j] == '-') {
			j++
		}
		if j < len(s.src) && isDigit(s.src[j]) {
			for j < len(s.src) && isDigit(s.src[j]) {
				j++
			}
			i = j
		}
	}
	v, err := strconv.ParseFloat(s.src[start:i], 64)
	if err != nil {
		return 0, false
	}
	s.pos = i
	return v, true
}

func (s *scanner) pair() (geom.Point, bool) {
	if !s.peekNumber() {
		return geom.Point{}, false
	}
	x, ok := s.number()
	if !ok {
		return geom.Point{}, false
	}
	if !s.peekNumber() {
		return geom.Point{}, false
	}
	y, ok := s.number()
	if !ok {
		return geom.Point{}, false
	}
	return geom.Point{X: x, Y: y}, true
}
