package record

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/awalterschulze/gographviz"
)

type dotNode struct {
	ID      int
	Content string
	Hash    string
}

// ToDot renders the whole node tree as a graphviz digraph for variation
// inspection. Node labels carry the move or setup summary and the cached
// position hash.
func (m *NodeModel) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	g.SetDir(true)

	ids := make(map[*Node]int)
	var walk func(n *Node)
	var buf bytes.Buffer
	walk = func(n *Node) {
		id := len(ids)
		ids[n] = id

		d := dotNode{
			ID:      id,
			Content: describeNode(n),
			Hash:    fmt.Sprintf("%016x", n.zobristHash),
		}
		dotTmpl.Execute(&buf, d)
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		g.AddNode("G", fmt.Sprintf("%v", id), attrs)
		buf.Reset()

		for child := n.firstChild; child != nil; child = child.nextSibling {
			walk(child)
			g.AddEdge(fmt.Sprintf("%v", id), fmt.Sprintf("%v", ids[child]), true, nil)
		}
	}
	walk(m.root)
	return g.String()
}

func describeNode(n *Node) string {
	switch {
	case n.move != nil:
		return fmt.Sprintf("%s", n.move)
	case n.setup != nil:
		return fmt.Sprintf("setup +%dB +%dW -%d", len(n.setup.black), len(n.setup.white), len(n.setup.clear))
	case n.parent == nil:
		return "root"
	case n.annotation != nil:
		return "annotation"
	case n.markup != nil:
		return "markup"
	}
	return "empty"
}

const dotTmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Node</TD><TD>{{.ID}}</TD></TR>
<TR><TD>Content</TD><TD>{{.Content}}</TD></TR>
<TR><TD>Hash</TD><TD>{{.Hash}}</TD></TR>
</TABLE>
>
`

var dotTmpl *template.Template

func init() {
	dotTmpl = template.Must(template.New("node").Parse(dotTmplRaw))
}
