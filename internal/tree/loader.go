package tree

import (
	"github.com/scigolib/fbxcel/internal/lowlevel"
	"github.com/scigolib/fbxcel/internal/parser"
)

// LoadTree drives p to exhaustion, materializing its event stream into
// a Tree (spec.md §4.6). Attributes are decoded with the direct loader
// and stored verbatim. It returns the footer the parser observed at
// end of file alongside the tree. The error result is either a hard
// parser failure, in which case the tree is nil, or the footer's own
// error, in which case the tree and footer are still returned.
func LoadTree(p *parser.Parser) (*Tree, lowlevel.Footer, error) {
	t := newTree()
	stack := []int{0}

	for {
		ev, err := p.NextEvent()
		if err != nil {
			return nil, lowlevel.Footer{}, err
		}

		switch ev.Kind {
		case parser.EventNodeStart:
			attrs, err := drainAttributes(ev.NodeStart.Attrs)
			if err != nil {
				return nil, lowlevel.Footer{}, err
			}
			parentIdx := stack[len(stack)-1]
			idx := t.appendChild(parentIdx, ev.NodeStart.Name, attrs)
			stack = append(stack, idx)

		case parser.EventNodeEnd:
			stack = stack[:len(stack)-1]

		case parser.EventEndOfFile:
			return t, ev.EndOfFile.Footer, ev.EndOfFile.FooterErr
		}
	}
}

func drainAttributes(c *parser.AttributeCursor) ([]parser.AttributeValue, error) {
	attrs := make([]parser.AttributeValue, 0, c.Total())
	loader := parser.NewDirectLoader()
	for {
		ok, err := c.LoadNext(loader)
		if err != nil {
			return nil, err
		}
		if !ok {
			return attrs, nil
		}
		attrs = append(attrs, loader.Value)
	}
}
