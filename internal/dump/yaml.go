package dump

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jcorbin/stacky/internal/ast"
)

// AST writes a parse tree as a YAML document: a sequence of single key
// mappings, one per node, keyed by node kind.
func AST(w io.Writer, node ast.Node) error {
	var yb yamlBuilder
	doc, err := yb.build(node)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// yamlBuilder converts one node at a time, leaving the result in node.
type yamlBuilder struct{ node *yaml.Node }

func (yb *yamlBuilder) build(n ast.Node) (*yaml.Node, error) {
	if err := n.Accept(yb); err != nil {
		return nil, err
	}
	return yb.node, nil
}

func (yb *yamlBuilder) seq(nodes []ast.Node) (*yaml.Node, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, n := range nodes {
		y, err := yb.build(n)
		if err != nil {
			return nil, err
		}
		seq.Content = append(seq.Content, y)
	}
	return seq, nil
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func mapping(kvs ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: kvs}
}

func (yb *yamlBuilder) set(key string, val *yaml.Node) error {
	yb.node = mapping(str(key), val)
	return nil
}

func (yb *yamlBuilder) VisitNumber(n *ast.Number) error {
	return yb.set("number", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: n.String()})
}

func (yb *yamlBuilder) VisitStringLiteral(n *ast.StringLiteral) error {
	return yb.set("string", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Text, Style: yaml.DoubleQuotedStyle})
}

func (yb *yamlBuilder) VisitOperation(n *ast.Operation) error {
	return yb.set("op", str(n.String()))
}

func (yb *yamlBuilder) VisitExpressions(n *ast.Expressions) error {
	seq, err := yb.seq(n.Nodes)
	yb.node = seq
	return err
}

func (yb *yamlBuilder) VisitFunctionCall(n *ast.FunctionCall) error {
	return yb.set("call", str(n.Name))
}

func (yb *yamlBuilder) VisitWordDefinition(n *ast.WordDefinition) error {
	body, err := yb.seq(n.Body)
	if err != nil {
		return err
	}
	return yb.set("define", mapping(str("name"), str(n.Name), str("body"), body))
}

func (yb *yamlBuilder) VisitIf(n *ast.If) error {
	then, err := yb.seq(n.IfBody)
	if err != nil {
		return err
	}
	m := mapping(str("then"), then)
	if len(n.ElseBody) > 0 {
		els, err := yb.seq(n.ElseBody)
		if err != nil {
			return err
		}
		m.Content = append(m.Content, str("else"), els)
	}
	return yb.set("if", m)
}

func (yb *yamlBuilder) VisitLoop(n *ast.Loop) error {
	body, err := yb.seq(n.Body)
	if err != nil {
		return err
	}
	return yb.set("loop", body)
}

func (yb *yamlBuilder) VisitLoopVariable(n *ast.LoopVariable) error {
	return yb.set("index", str(n.String()))
}

func (yb *yamlBuilder) VisitSetVariable(n *ast.SetVariable) error {
	return yb.set("set", str(n.Name))
}

func (yb *yamlBuilder) VisitGetVariable(n *ast.GetVariable) error {
	return yb.set("get", str(n.Name))
}
