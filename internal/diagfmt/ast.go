package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
)

// ASTNodeOutput is one node of the parse tree, shared by the pretty and
// JSON dumps.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// BuildAST converts one parsed file into an output tree.
func BuildAST(builder *ast.Builder, fileID ast.FileID) (ASTNodeOutput, error) {
	file := builder.Files.Get(fileID)
	if file == nil {
		return ASTNodeOutput{}, fmt.Errorf("file not found")
	}
	root := ASTNodeOutput{Type: "File", Span: file.Span}
	for _, sid := range file.Scripts {
		root.Children = append(root.Children, scriptNode(builder, sid))
	}
	return root, nil
}

func scriptNode(b *ast.Builder, sid ast.ScriptID) ASTNodeOutput {
	s := b.Scripts.Get(sid)
	node := ASTNodeOutput{
		Type: "Script",
		Span: s.Span,
		Text: "[" + s.Trigger.Text + "," + s.Name.Text + "]",
	}
	for _, a := range s.Annotations {
		node.Children = append(node.Children, ASTNodeOutput{
			Type: "Annotation",
			Span: a.Span,
			Text: a.Name.Text + "=" + strconv.FormatInt(int64(a.Value), 10),
		})
	}
	for _, pid := range s.Params {
		p := b.Scripts.Param(pid)
		typ := p.Type.String()
		if p.Array {
			typ += "array"
		}
		node.Children = append(node.Children, ASTNodeOutput{Type: "Param", Kind: typ, Span: p.Span, Text: p.Name.Text})
	}
	if len(s.Returns) > 0 {
		names := make([]string, len(s.Returns))
		for i, r := range s.Returns {
			names[i] = r.Type.String()
		}
		node.Children = append(node.Children, ASTNodeOutput{Type: "Returns", Span: s.HeaderSpan, Text: strings.Join(names, ",")})
	}
	for _, st := range s.Body {
		node.Children = append(node.Children, stmtNode(b, st))
	}
	return node
}

func stmtNode(b *ast.Builder, id ast.StmtID) ASTNodeOutput {
	st := b.Stmts.Get(id)
	node := ASTNodeOutput{Type: "Stmt", Kind: st.Kind.String(), Span: st.Span}
	switch st.Kind {
	case ast.StmtVarDecl:
		d, _ := b.Stmts.VarDecl(id)
		node.Text = d.Type.String() + " $" + d.Name.Text
	case ast.StmtArrayDecl:
		d, _ := b.Stmts.ArrayDecl(id)
		node.Text = d.Type.String() + "array $" + d.Name.Text
	case ast.StmtSwitch:
		d, _ := b.Stmts.Switch(id)
		node.Text = d.Type.String()
		node.Children = append(node.Children, exprNode(b, d.Cond))
		for _, c := range d.Cases {
			arm := ASTNodeOutput{Type: "Case", Span: c.Span}
			if c.Default {
				arm.Text = "default"
			}
			for _, k := range c.Keys {
				arm.Children = append(arm.Children, exprNode(b, k))
			}
			for _, body := range c.Body {
				arm.Children = append(arm.Children, stmtNode(b, body))
			}
			node.Children = append(node.Children, arm)
		}
		return node
	}
	stmts, exprs := b.StmtChildren(id)
	for _, e := range exprs {
		node.Children = append(node.Children, exprNode(b, e))
	}
	for _, s := range stmts {
		node.Children = append(node.Children, stmtNode(b, s))
	}
	return node
}

func exprNode(b *ast.Builder, id ast.ExprID) ASTNodeOutput {
	e := b.Exprs.Get(id)
	node := ASTNodeOutput{Type: "Expr", Kind: e.Kind.String(), Span: e.Span, Text: exprText(b, id, e.Kind)}
	for _, child := range b.ExprChildren(id) {
		node.Children = append(node.Children, exprNode(b, child))
	}
	return node
}

func exprText(b *ast.Builder, id ast.ExprID, kind ast.ExprKind) string {
	switch {
	case kind == ast.ExprNull:
		return "null"
	case kind.IsLiteral():
		d, ok := b.Exprs.Literal(id)
		if !ok || d == nil {
			return ""
		}
		switch kind {
		case ast.ExprBool:
			return strconv.FormatBool(d.Bool)
		case ast.ExprInt, ast.ExprCoord:
			return strconv.FormatInt(int64(d.Int), 10)
		case ast.ExprLong:
			return strconv.FormatInt(d.Long, 10) + "L"
		case ast.ExprString:
			return strconv.Quote(d.Str)
		case ast.ExprTypeLit:
			return d.Type.String()
		}
	case kind == ast.ExprBinary:
		if d, ok := b.Exprs.Binary(id); ok {
			return d.Op.String()
		}
	case kind == ast.ExprArrayElem:
		if d, ok := b.Exprs.ArrayElem(id); ok {
			return d.Name.Text
		}
	case kind == ast.ExprCommand:
		if d, ok := b.Exprs.Command(id); ok {
			if d.Alternative {
				return "." + d.Name.Text
			}
			return d.Name.Text
		}
	case kind == ast.ExprCall:
		if d, ok := b.Exprs.Call(id); ok {
			return d.Operator + d.Name.Text
		}
	case kind == ast.ExprHook:
		if d, ok := b.Exprs.Hook(id); ok {
			if d.Empty() {
				return "<empty>"
			}
			return d.Name.Text
		}
	default:
		if d, ok := b.Exprs.Name(id); ok {
			return d.Name.Text
		}
	}
	return ""
}

// FormatASTPretty prints the tree with box-drawing connectors.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := BuildAST(builder, fileID)
	if err != nil {
		return err
	}
	header := "File"
	if fs != nil {
		header = fs.Get(root.Span.File).FormatPath("auto", fs.BaseDir())
	}
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", header, formatSpan(root.Span, fs)); err != nil {
		return err
	}
	return printChildren(w, root.Children, "", fs)
}

func printChildren(w io.Writer, nodes []ASTNodeOutput, prefix string, fs *source.FileSet) error {
	for i := range nodes {
		connector, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			connector, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, connector, nodeLabel(&nodes[i], fs)); err != nil {
			return err
		}
		if err := printChildren(w, nodes[i].Children, prefix+next, fs); err != nil {
			return err
		}
	}
	return nil
}

func nodeLabel(n *ASTNodeOutput, fs *source.FileSet) string {
	var sb strings.Builder
	sb.WriteString(n.Type)
	if n.Kind != "" {
		sb.WriteString(":")
		sb.WriteString(n.Kind)
	}
	if n.Text != "" {
		sb.WriteString(" ")
		sb.WriteString(n.Text)
	}
	fmt.Fprintf(&sb, " (span: %s)", formatSpan(n.Span, fs))
	return sb.String()
}

func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	root, err := BuildAST(builder, fileID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
