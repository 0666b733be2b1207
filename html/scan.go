// Package html implements dartdoc.Extractor and dartdoc.TableParser on
// top of the golang.org/x/net/html tokenizer. Offsets of the scanned tags
// refer to the raw input, so section bodies and cell markup are sliced
// from the document unchanged.
package html

import (
	"strings"

	"golang.org/x/net/html"
)

// tag is a start or end tag found in the raw input.
type tag struct {
	name        string
	end         bool
	selfClosing bool
	start       int // offset of '<'
	stop        int // offset just past '>'
	attrs       map[string]string
}

// scanTags returns the tags named in names, in document order. Tag names
// are matched case-insensitively. Every element's content is tokenized as
// markup, so title or script elements never swallow the rest of the input.
func scanTags(text string, names ...string) []tag {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var tags []tag
	z := html.NewTokenizer(strings.NewReader(text))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return tags
		}
		start := offset
		offset += len(z.Raw())

		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
		default:
			continue
		}
		if tt == html.StartTagToken {
			z.NextIsNotRawText()
		}

		name, hasAttr := z.TagName()
		if !want[string(name)] {
			continue
		}
		t := tag{
			name:        string(name),
			end:         tt == html.EndTagToken,
			selfClosing: tt == html.SelfClosingTagToken,
			start:       start,
			stop:        offset,
		}
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			if t.attrs == nil {
				t.attrs = make(map[string]string)
			}
			t.attrs[string(key)] = string(val)
		}
		tags = append(tags, t)
	}
}

// region is a span of the input delimited by a start tag and its
// matching end tag.
type region struct {
	start int // offset of the start tag
	inner int // offset just past the start tag
	close int // offset of the end tag
	stop  int // offset just past the end tag
}

// pairRegions matches start and end tags named name, honouring nesting.
// Only outermost regions are returned; an unclosed region is dropped.
func pairRegions(tags []tag, name string) []region {
	var regions []region
	depth := 0
	var open tag
	for _, t := range tags {
		if t.name != name || t.selfClosing {
			continue
		}
		if !t.end {
			if depth == 0 {
				open = t
			}
			depth++
			continue
		}
		if depth == 0 {
			continue
		}
		depth--
		if depth == 0 {
			regions = append(regions, region{start: open.start, inner: open.stop, close: t.start, stop: t.stop})
		}
	}
	return regions
}
