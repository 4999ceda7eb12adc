package rodriver

import (
	"fmt"
)

// inlineShadowRootsJS copies every open shadow root into a
// <template shadowrootmode="open"> child of its host, so the serialized
// document keeps content rendered by web components. Nested roots are
// handled before their host is serialized.
const inlineShadowRootsJS = `() => {
	let count = 0;
	const visit = (root) => {
		for (const el of root.querySelectorAll('*')) {
			if (!el.shadowRoot) continue;
			visit(el.shadowRoot);
			const tpl = document.createElement('template');
			tpl.setAttribute('shadowrootmode', 'open');
			tpl.setAttribute('data-pagekit-shadow', 'true');
			tpl.innerHTML = el.shadowRoot.innerHTML;
			el.prepend(tpl);
			count++;
		}
	};
	visit(document);
	return count;
}`

// Snapshot returns the current document as HTML with open shadow roots
// inlined. The result can be loaded into the static driver to replay the
// page offline. It mutates the live DOM, so navigate away before
// interacting with the page again.
func (s *Session) Snapshot() (html string, shadowRoots int, err error) {
	res, err := s.page.Eval(inlineShadowRootsJS)
	if err != nil {
		s.logger.Debug().Err(err).Msg("shadow root inlining failed, using plain HTML")
	} else {
		shadowRoots = res.Value.Int()
	}

	html, err = s.page.HTML()
	if err != nil {
		return "", 0, fmt.Errorf("read page HTML: %w", err)
	}
	return html, shadowRoots, nil
}
