package rodriver

import (
	"math/rand"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
)

// keystrokeDelay returns the pause after a human-paced keystroke, 50-150ms.
var keystrokeDelay = func() time.Duration {
	return time.Duration(50+rand.Intn(100)) * time.Millisecond
}

// keys converts text to one key per rune.
func keys(text string) []input.Key {
	out := make([]input.Key, 0, len(text))
	for _, r := range text {
		out = append(out, input.Key(r))
	}
	return out
}

// typeHuman sends one keystroke at a time with a random pause after each,
// so pages that listen for keydown/keyup see real typing.
func typeHuman(el *rod.Element, text string) error {
	for _, k := range keys(text) {
		if err := el.Type(k); err != nil {
			return err
		}
		time.Sleep(keystrokeDelay())
	}
	return nil
}

// typeFast sends the keystrokes back to back.
func typeFast(el *rod.Element, text string) error {
	if text == "" {
		return nil
	}
	return el.Type(keys(text)...)
}
