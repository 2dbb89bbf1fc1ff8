// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package flipbook

// Direction is the direction of the last page turn.
type Direction string

// Page turn directions.
const (
	DirectionNone Direction = ""
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

// Session is the paging state over a resolved list of page images.
// The active page is 1-based and stays within [1, Len()] while pages exist.
type Session struct {
	pages     []string
	active    int
	direction Direction
}

// NewSession starts a session on page 1 of pages.
func NewSession(pages []string) Session {
	s := Session{pages: append([]string(nil), pages...)}
	if len(s.pages) > 0 {
		s.active = 1
	}
	return s
}

// Len returns the number of pages.
func (s Session) Len() int { return len(s.pages) }

// Active returns the 1-based active page, or 0 when there are no pages.
func (s Session) Active() int { return s.active }

// Direction returns the direction of the last successful page turn.
func (s Session) Direction() Direction { return s.direction }

// Pages returns a copy of the page URLs.
func (s Session) Pages() []string {
	return append([]string(nil), s.pages...)
}

// Current returns the URL of the active page.
func (s Session) Current() string {
	if s.active < 1 || s.active > len(s.pages) {
		return ""
	}
	return s.pages[s.active-1]
}

// GoPrev moves back one page. It reports false and changes nothing on page 1.
func (s *Session) GoPrev() bool {
	if s.active <= 1 {
		return false
	}
	s.active--
	s.direction = DirectionPrev
	return true
}

// GoNext moves forward one page. It reports false and changes nothing on the last page.
func (s *Session) GoNext() bool {
	if s.active >= len(s.pages) {
		return false
	}
	s.active++
	s.direction = DirectionNext
	return true
}

// GoTo jumps to page, clamped to the valid range. The direction follows the
// jump; jumping to the active page changes nothing.
func (s *Session) GoTo(page int) bool {
	if len(s.pages) == 0 {
		return false
	}
	page = max(1, min(page, len(s.pages)))
	if page == s.active {
		return false
	}
	if page > s.active {
		s.direction = DirectionNext
	} else {
		s.direction = DirectionPrev
	}
	s.active = page
	return true
}
