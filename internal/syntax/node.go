package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"

	"glot/internal/source"
)

// Node kind tags of the TypeScript grammar the backends dispatch on.
// Tags are the grammar's own names; see tree-sitter-typescript.
const (
	KindProgram             = "program"
	KindComment             = "comment"
	KindExpressionStatement = "expression_statement"
	KindStatementBlock      = "statement_block"
	KindReturnStatement     = "return_statement"
	KindIfStatement         = "if_statement"
	KindElseClause          = "else_clause"
	KindForInStatement      = "for_in_statement"

	KindFunctionDeclaration = "function_declaration"
	KindMethodDefinition    = "method_definition"
	KindFormalParameters    = "formal_parameters"
	KindRequiredParameter   = "required_parameter"
	KindOptionalParameter   = "optional_parameter"
	KindStatementIdentifier = "statement_identifier"

	KindClassDeclaration     = "class_declaration"
	KindClassBody            = "class_body"
	KindClassHeritage        = "class_heritage"
	KindExtendsClause        = "extends_clause"
	KindImplementsClause     = "implements_clause"
	KindInterfaceDeclaration = "interface_declaration"
	KindInterfaceBody        = "interface_body"
	KindObjectType           = "object_type"
	KindPropertySignature    = "property_signature"
	KindMethodSignature      = "method_signature"
	KindIndexSignature       = "index_signature"
	KindPublicFieldDef       = "public_field_definition"
	KindTypeAliasDeclaration = "type_alias_declaration"

	KindLexicalDeclaration  = "lexical_declaration"
	KindVariableDeclaration = "variable_declaration"
	KindVariableDeclarator  = "variable_declarator"

	KindIdentifier            = "identifier"
	KindPropertyIdentifier    = "property_identifier"
	KindTypeIdentifier        = "type_identifier"
	KindPredefinedType        = "predefined_type"
	KindTypeAnnotation        = "type_annotation"
	KindUnionType             = "union_type"
	KindArrayType             = "array_type"
	KindGenericType           = "generic_type"
	KindTypeArguments         = "type_arguments"
	KindLiteralType           = "literal_type"

	KindObject                 = "object"
	KindPair                   = "pair"
	KindShorthandPropertyIdent = "shorthand_property_identifier"
	KindArray                  = "array"
	KindString                 = "string"
	KindStringFragment         = "string_fragment"
	KindTemplateString         = "template_string"
	KindTemplateSubstitution   = "template_substitution"
	KindNumber                 = "number"
	KindTrue                   = "true"
	KindFalse                  = "false"
	KindNull                   = "null"
	KindUndefined              = "undefined"
	KindThis                   = "this"

	KindMemberExpression        = "member_expression"
	KindSubscriptExpression     = "subscript_expression"
	KindCallExpression          = "call_expression"
	KindNewExpression           = "new_expression"
	KindArguments               = "arguments"
	KindBinaryExpression        = "binary_expression"
	KindUnaryExpression         = "unary_expression"
	KindAssignmentExpression    = "assignment_expression"
	KindParenthesizedExpression = "parenthesized_expression"
	KindAsExpression            = "as_expression"
	KindNonNullExpression       = "non_null_expression"

	// KindError is the parser's recovery node for unparsable regions.
	KindError = "ERROR"
)

// Text returns the exact source text of the node.
func Text(n *sitter.Node, content []byte) string {
	if n == nil {
		return ""
	}
	return string(content[n.StartByte():n.EndByte()])
}

// NodeSpan converts a node's byte range into a source span.
func NodeSpan(fid source.FileID, n *sitter.Node) source.Span {
	if n == nil {
		return source.Span{File: fid}
	}
	return source.Span{File: fid, Start: n.StartByte(), End: n.EndByte()}
}

// Field returns the child for a grammar field name, or nil.
func Field(n *sitter.Node, name string) *sitter.Node {
	if n == nil {
		return nil
	}
	return n.ChildByFieldName(name)
}

// NamedChildren returns all named children in order. Anonymous tokens
// (punctuation, keywords) are skipped.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// NamedChildrenOfKind returns named children whose kind tag matches.
func NamedChildrenOfKind(n *sitter.Node, kind string) []*sitter.Node {
	var out []*sitter.Node
	for _, c := range NamedChildren(n) {
		if c.Type() == kind {
			out = append(out, c)
		}
	}
	return out
}
