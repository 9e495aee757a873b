package parser

import "github.com/scigolib/fbxcel/internal/utils"

// syntacticPosition builds the utils.Position attached to an error or
// warning raised while p is positioned as described.
func (p *Parser) syntacticPosition(componentStart uint64, attrIndex *int) *utils.Position {
	return &utils.Position{
		BytePos:          p.pr.Position(),
		ComponentBytePos: componentStart,
		NodePath:         append([]string(nil), p.nodePath()...),
		AttributeIndex:   attrIndex,
	}
}

func (p *Parser) nodePath() []string {
	path := make([]string, len(p.stack))
	for i, f := range p.stack {
		path[i] = f.name
	}
	return path
}
