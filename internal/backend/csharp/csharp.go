// Package csharp is the reference backend: the worked rule catalog and type
// mapper that translate TypeScript example files into C# source text.
package csharp

import (
	"glot/internal/render"
	"glot/internal/syntax"
)

const indentWidth = 4

// placeholder stands in wherever a required name or type cannot be resolved.
// Generated code containing it will not compile, deliberately: placeholders
// mark exactly the sites that accumulated diagnostics.
const placeholder = "Unknown"

// Backend implements the target contract for C#.
type Backend struct{}

func New() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string {
	return "csharp"
}

func (b *Backend) FileExtension() string {
	return ".cs"
}

func (b *Backend) TypeMapper() render.TypeMapper {
	return MapType
}

// DefaultContext establishes the C# root defaults. Most object literals in
// example code are configuration structs, so the struct branch is the
// shipped default for untyped literals; the knob stays in configuration.
func (b *Backend) DefaultContext(preferStruct bool) render.Context {
	return render.Context{PreferStructLiteral: preferStruct}
}

// Rules returns the per-node-kind catalog. Every kind reachable from the
// constructs this backend supports has exactly one entry; anything else is a
// missing-dispatch failure by design of the engine.
func (b *Backend) Rules() render.RuleSet {
	return render.RuleSet{
		syntax.KindProgram:             ruleProgram,
		syntax.KindComment:             ruleComment,
		syntax.KindExpressionStatement: ruleExpressionStatement,
		syntax.KindStatementBlock:      ruleStatementBlock,
		syntax.KindReturnStatement:     ruleReturnStatement,
		syntax.KindIfStatement:         ruleIfStatement,
		syntax.KindElseClause:          ruleElseClause,
		syntax.KindForInStatement:      ruleForOf,

		syntax.KindFunctionDeclaration: ruleFunctionDeclaration,
		syntax.KindMethodDefinition:    ruleMethodDefinition,
		syntax.KindRequiredParameter:   ruleParameter,
		syntax.KindOptionalParameter:   ruleParameter,

		syntax.KindClassDeclaration:     ruleClassDeclaration,
		syntax.KindInterfaceDeclaration: ruleInterfaceDeclaration,
		syntax.KindPropertySignature:    rulePropertySignature,
		syntax.KindMethodSignature:      ruleMethodSignature,
		syntax.KindPublicFieldDef:       rulePublicField,
		syntax.KindTypeAliasDeclaration: ruleTypeAlias,

		syntax.KindLexicalDeclaration:  ruleVariableDeclaration,
		syntax.KindVariableDeclaration: ruleVariableDeclaration,

		syntax.KindIdentifier:            ruleIdentifier,
		syntax.KindPropertyIdentifier:    ruleIdentifier,
		syntax.KindShorthandPropertyIdent: ruleShorthandProperty,
		syntax.KindThis:                  ruleThis,

		syntax.KindObject:         ruleObjectLiteral,
		syntax.KindPair:           rulePair,
		syntax.KindArray:          ruleArrayLiteral,
		syntax.KindString:         ruleString,
		syntax.KindTemplateString: ruleTemplateString,
		syntax.KindNumber:         rulePassthrough,
		syntax.KindTrue:           rulePassthrough,
		syntax.KindFalse:          rulePassthrough,
		syntax.KindNull:           ruleNull,
		syntax.KindUndefined:      ruleNull,

		syntax.KindMemberExpression:        ruleMemberExpression,
		syntax.KindSubscriptExpression:     ruleSubscriptExpression,
		syntax.KindCallExpression:          ruleCallExpression,
		syntax.KindNewExpression:           ruleNewExpression,
		syntax.KindBinaryExpression:        ruleBinaryExpression,
		syntax.KindUnaryExpression:         ruleUnaryExpression,
		syntax.KindAssignmentExpression:    ruleAssignmentExpression,
		syntax.KindParenthesizedExpression: ruleParenthesized,
		syntax.KindAsExpression:            ruleAsExpression,
		syntax.KindNonNullExpression:       ruleNonNullExpression,

		// Already diagnosed during the syntax pass; the site renders a
		// placeholder so surrounding code still converts.
		syntax.KindError: ruleSyntaxError,
	}
}
