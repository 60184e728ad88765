package grammar

import "strings"

func (p *Program) String() string {
	words := make([]string, 0, len(p.Words))
	for _, w := range p.Words {
		words = append(words, w.String())
	}
	return strings.Join(words, " ")
}

func (w *Word) String() string {
	if w.Value == nil {
		return w.Letter
	}
	return w.Letter + *w.Value
}
