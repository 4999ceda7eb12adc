package rodriver

import (
	"fmt"

	"github.com/grez-lucas/pagekit/internal/driver"
)

// Frame returns a session scoped to the document inside the iframe matched
// by loc. It shares the parent's page; quitting it releases nothing.
func (s *Session) Frame(loc driver.Locator) (*Session, error) {
	found, err := s.FindElement(loc)
	if err != nil {
		return nil, err
	}

	frame, err := found.(*Element).el.Frame()
	if err != nil {
		return nil, fmt.Errorf("frame %s: %w", loc, classify(loc, err))
	}

	return &Session{
		page:        frame,
		parent:      s,
		humanTyping: s.humanTyping,
		navTimeout:  s.navTimeout,
		logger:      s.logger.With().Str("frame", loc.String()).Logger(),
	}, nil
}
