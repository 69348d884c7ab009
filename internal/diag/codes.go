package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                      Code = 1000
	LexUnknownChar               Code = 1001
	LexUnterminatedString        Code = 1002
	LexUnterminatedBlockComment  Code = 1003
	LexBadNumber                 Code = 1004
	LexBadEscape                 Code = 1005
	LexUnterminatedInterpolation Code = 1006

	// Синтаксические
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectSemicolon  Code = 2002
	SynExpectIdentifier Code = 2003
	SynBadScriptHeader  Code = 2004
	SynUnknownTrigger   Code = 2005
	SynDuplicateDefault Code = 2006
	SynBadCoordgrid     Code = 2007
	SynBadIntLiteral    Code = 2008
	SynExpectExpression Code = 2009
	SynExpectStatement  Code = 2010
	SynUnclosedParen    Code = 2011
	SynUnclosedBrace    Code = 2012
	SynBadHook          Code = 2013
	SynBadAnnotation    Code = 2014
	SynUnknownType      Code = 2015

	// Семантические
	SemaInfo                   Code = 3000
	SemaDuplicateAnnotation    Code = 3001
	SemaUnknownTrigger         Code = 3002
	SemaTriggerNoArguments     Code = 3003
	SemaTriggerNoReturns       Code = 3004
	SemaTriggerArgMismatch     Code = 3005
	SemaTriggerReturnMismatch  Code = 3006
	SemaScriptAlreadyDefined   Code = 3007
	SemaOverrideMismatch       Code = 3008
	SemaOverrideWithID         Code = 3009
	SemaDuplicateLocal         Code = 3010
	SemaDuplicateArray         Code = 3011
	SemaNoDefaultValue         Code = 3012
	SemaUnresolvedVariable     Code = 3013
	SemaUnresolvedArray        Code = 3014
	SemaUnresolvedConstant     Code = 3015
	SemaUnresolvedSymbol       Code = 3016
	SemaUnresolvedCommand      Code = 3017
	SemaUnresolvedScript       Code = 3018
	SemaUnresolvedHook         Code = 3019
	SemaOperatorMismatch       Code = 3020
	SemaArithmeticOutsideCalc  Code = 3021
	SemaCommandNotApplicable   Code = 3022
	SemaScriptNotApplicable    Code = 3023
	SemaNoAlternative          Code = 3024
	SemaHookTransmitRequired   Code = 3025
	SemaHookTransmitForbidden  Code = 3026
	SemaTypeMismatch           Code = 3027
	SemaCaseNotConstant        Code = 3028
	SemaDuplicateCase          Code = 3029
	SemaLoopControlOutsideLoop Code = 3030
	SemaNotArrayable           Code = 3031
	SemaAssignmentMismatch     Code = 3032
	SemaNotDeclarable          Code = 3033

	// Ввод-вывод
	IOReadFailed  Code = 4001
	IOWriteFailed Code = 4002

	// Проект
	PrjUnknownKey  Code = 5001
	PrjBadManifest Code = 5002

	// Генератор: нарушения инвариантов, недостижимые после проверки
	GenInternal      Code = 6001
	GenDanglingLabel Code = 6002
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:                      "Lexical information",
	LexUnknownChar:               "Unknown character",
	LexUnterminatedString:        "Unterminated string literal",
	LexUnterminatedBlockComment:  "Unterminated block comment",
	LexBadNumber:                 "Malformed number literal",
	LexBadEscape:                 "Unknown escape sequence",
	LexUnterminatedInterpolation: "Unterminated string interpolation",

	SynInfo:             "Syntax information",
	SynUnexpectedToken:  "Unexpected token",
	SynExpectSemicolon:  "Expected ';'",
	SynExpectIdentifier: "Expected identifier",
	SynBadScriptHeader:  "Malformed script header",
	SynUnknownTrigger:   "Unknown trigger",
	SynDuplicateDefault: "Duplicate default case",
	SynBadCoordgrid:     "Malformed coordgrid literal",
	SynBadIntLiteral:    "Integer literal out of range",
	SynExpectExpression: "Expected expression",
	SynExpectStatement:  "Expected statement",
	SynUnclosedParen:    "Unclosed parenthesis",
	SynUnclosedBrace:    "Unclosed brace",
	SynBadHook:          "Malformed hook",
	SynBadAnnotation:    "Malformed annotation",
	SynUnknownType:      "Unknown type",

	SemaInfo:                   "Semantic information",
	SemaDuplicateAnnotation:    "Duplicate annotation",
	SemaUnknownTrigger:         "Unknown trigger",
	SemaTriggerNoArguments:     "Trigger does not allow arguments",
	SemaTriggerNoReturns:       "Trigger does not allow return values",
	SemaTriggerArgMismatch:     "Trigger argument types mismatch",
	SemaTriggerReturnMismatch:  "Trigger return types mismatch",
	SemaScriptAlreadyDefined:   "Script already defined",
	SemaOverrideMismatch:       "Override signature mismatch",
	SemaOverrideWithID:         "Id annotation on overriding script",
	SemaDuplicateLocal:         "Duplicate local variable",
	SemaDuplicateArray:         "Duplicate array",
	SemaNoDefaultValue:         "Type has no default value",
	SemaUnresolvedVariable:     "Unresolved variable",
	SemaUnresolvedArray:        "Unresolved array",
	SemaUnresolvedConstant:     "Unresolved constant",
	SemaUnresolvedSymbol:       "Unresolved symbol",
	SemaUnresolvedCommand:      "Unresolved command",
	SemaUnresolvedScript:       "Unresolved script",
	SemaUnresolvedHook:         "Unresolved hook script",
	SemaOperatorMismatch:       "Operator undefined for operand types",
	SemaArithmeticOutsideCalc:  "Arithmetic outside calc",
	SemaCommandNotApplicable:   "Command not applicable for arguments",
	SemaScriptNotApplicable:    "Script not applicable for arguments",
	SemaNoAlternative:          "Command has no alternative form",
	SemaHookTransmitRequired:   "Hook transmit list required",
	SemaHookTransmitForbidden:  "Hook transmit list not allowed",
	SemaTypeMismatch:           "Type mismatch",
	SemaCaseNotConstant:        "Case key is not constant",
	SemaDuplicateCase:          "Duplicate case",
	SemaLoopControlOutsideLoop: "Loop control outside loop",
	SemaNotArrayable:           "Type cannot be used in arrays",
	SemaAssignmentMismatch:     "Assignment type mismatch",
	SemaNotDeclarable:          "Type cannot be declared",

	IOReadFailed:  "Failed to read source",
	IOWriteFailed: "Failed to write output",

	PrjUnknownKey:  "Unknown configuration key",
	PrjBadManifest: "Invalid project manifest",

	GenInternal:      "Internal code generator error",
	GenDanglingLabel: "Dangling label reference",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("GEN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
