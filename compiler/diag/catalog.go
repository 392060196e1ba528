package diag

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ID is the stable identifier of a diagnostic message.  Tests and
// tools match on IDs, never on rendered text.
type ID string

const (
	CannotContinue ID = "CANNOT_CONTINUE_DUE_TO_ERRORS"

	// Expression IR
	EvaluationException    ID = "CORE_EVALUATION_EXCEPTION"
	EvaluationExceptionMsg ID = "CORE_EVALUATION_EXCEPTION_MSG"
	GetArgumentNeedsLit    ID = "GET_ARGUMENT_NEEDS_LITERAL"

	// Import subscriptions
	InvalidSubscriptionExpn           ID = "IMPORT_INVALID_SUBSCRIPTION_EXPN"
	InvalidSimplifiedSubscriptionExpn ID = "IMPORT_INVALID_SIMPLIFIED_SUBSCRIPTION_EXPN"
	InvalidSubscriptionSymbol         ID = "IMPORT_INVALID_SUBSCRIPTION_SYMBOL"
	InvalidSubscriptionLiteral        ID = "IMPORT_INVALID_SUBSCRIPTION_LITERAL"
	InvalidSubscriptionLiteralType    ID = "IMPORT_INVALID_SUBSCRIPTION_LITERAL_TYPE"
	InvalidSubscriptionInt64Literal   ID = "IMPORT_INVALID_SUBSCRIPTION_INT64_LITERAL"
	InvalidSubscriptionSubscriptType  ID = "IMPORT_INVALID_SUBSCRIPTION_SUBSCRIPT_LITERAL_TYPE"
	SubscriptionInvalid               ID = "IMPORT_SUBSCRIPTION_INVALID"

	// Import filters
	InvalidFilterExpn                ID = "IMPORT_INVALID_FILTER_EXPN"
	InvalidSimplifiedFilterExpn      ID = "IMPORT_INVALID_SIMPLIFIED_FILTER_EXPN"
	InvalidFilterSymbol              ID = "IMPORT_INVALID_FILTER_SYMBOL"
	InvalidFilterSymbolType          ID = "IMPORT_INVALID_FILTER_SYMBOL_TYPE"
	InvalidFilterSubscriptSymbolType ID = "IMPORT_INVALID_FILTER_SUBSCRIPT_SYMBOL_TYPE"
	InvalidFilterLiteral             ID = "IMPORT_INVALID_FILTER_LITERAL"
	InvalidFilterLiteralType         ID = "IMPORT_INVALID_FILTER_LITERAL_TYPE"
	InvalidFilterInt64Literal        ID = "IMPORT_INVALID_FILTER_INT64_LITERAL"
	InvalidFilterSubscriptType       ID = "IMPORT_INVALID_FILTER_SUBSCRIPT_LITERAL_TYPE"
	InvalidFilterModSymbol           ID = "IMPORT_INVALID_FILTER_MOD_SYMBOL"
	InvalidFilterNotList             ID = "IMPORT_INVALID_FILTER_NOT_LIST"
	InvalidFilterMismatchType        ID = "IMPORT_INVALID_FILTER_MISMATCH_TYPE"
	InvalidFilterNeedBool            ID = "IMPORT_INVALID_FILTER_NEED_BOOL"
	InvalidBooleanOperator           ID = "IMPORT_INVALID_BOOLEAN_OPERATOR"
	FilterSymbolNotInOutput          ID = "IMPORT_FILTER_SYMBOL_NOT_IN_OUTPUT"
	FilterSymbolHint                 ID = "IMPORT_FILTER_SYMBOL_HINT"
	FilterInvalid                    ID = "IMPORT_FILTER_INVALID"

	// Toolkit path search and resolution
	PathIsNotADirectory           ID = "PATH_IS_NOT_A_DIRECTORY"
	PathIsDuplicate               ID = "PATH_IS_DUPLICATE"
	MissingToolkit                ID = "MISSING_TOOLKIT"
	ToolkitMalformed              ID = "TOOLKIT_MALFORMED"
	SkippingToolkit               ID = "SKIPPING_TOOLKIT"
	LoadingToolkit                ID = "LOADING_TOOLKIT"
	UnreconcilableDependencies    ID = "UNRECONCILABLE_DEPENDENCIES"
	UnreconcilableToolkit         ID = "UNRECONCILABLE_TOOLKIT"
	ToolkitMismatchProductVersion ID = "TOOLKIT_MISMATCH_PRODUCT_VERSION"
	ToolkitDependencyMissing      ID = "TOOLKIT_DEPENDENCY_MISSING"
	ToolkitDependencyMismatch     ID = "TOOLKIT_DEPENDENCY_MISMATCH"
	DuplicateToolkitName          ID = "DUPLICATE_TOOLKIT_NAME"
	DuplicateToolkitNameDefaultNS ID = "DUPLICATE_TOOLKIT_NAME_DEFAULTNS"
	PreviousLocation              ID = "PREVIOUS_LOCATION"

	// Placement
	RelocatableNotRestartable ID = "RELOCATABLE_NOT_RESTARTABLE"
	PCLPEXConflict            ID = "PCL_PEX_CONFLICT"
	PCLRestartConflict        ID = "PCL_RESTART_CONFLICT"
	PCLRelocateConflict       ID = "PCL_RELOCATE_CONFLICT"
	PCLHEXConflict            ID = "PCL_HEX_CONFLICT"
	PCLPISConflict            ID = "PCL_PIS_CONFLICT"
	HCLHEXConflict            ID = "HCL_HEX_CONFLICT"
	PEXHISConflict            ID = "PEX_HIS_CONFLICT"
	RestartHISConflict        ID = "RESTART_HIS_CONFLICT"
	RelocateHISConflict       ID = "RELOCATE_HIS_CONFLICT"
	PISHISConflict            ID = "PIS_HIS_CONFLICT"
	FusionHISWarning          ID = "FUSION_HIS_WARNING"
	NeedDefaultPoolSize       ID = "NEED_DEFAULT_POOL_SIZE"
	ExclusivePoolConflict     ID = "EXCLUSIVE_POOL_CONFLICT"
	HPConflict                ID = "HP_CONFLICT"
	HEXPoolSizeConflict       ID = "HEX_POOLSIZE_CONFLICT"
	HEXHISFailure             ID = "HEX_HIS_FAILURE"
)

// English message formats.  Arguments are positional so translations
// may reorder them with explicit %[n] indices.
var english = map[ID]string{
	CannotContinue: "cannot continue due to previous errors",

	EvaluationException:    "an exception occurred while evaluating expression %[1]s",
	EvaluationExceptionMsg: "exception %[1]s occurred while evaluating expression %[2]s",
	GetArgumentNeedsLit:    "the argument %[2]s to %[1]s must be a string literal",

	InvalidSubscriptionExpn:           "invalid subscription expression %[1]s",
	InvalidSimplifiedSubscriptionExpn: "invalid subscription expression %[1]s in %[2]s",
	InvalidSubscriptionSymbol:         "invalid subscription symbol %[1]s",
	InvalidSubscriptionLiteral:        "subscription expression %[1]s is not a literal",
	InvalidSubscriptionLiteralType:    "subscription literal %[1]s must be a string, integer or float",
	InvalidSubscriptionInt64Literal:   "modulus in %[1]s must be an integer literal",
	InvalidSubscriptionSubscriptType:  "subscript %[1]s must be an integer literal",
	SubscriptionInvalid:               "subscription %[1]s is not a valid subscription expression: %[2]s",

	InvalidFilterExpn:                "invalid filter expression %[1]s",
	InvalidSimplifiedFilterExpn:      "invalid filter expression %[1]s in %[2]s",
	InvalidFilterSymbol:              "invalid filter symbol %[1]s",
	InvalidFilterSymbolType:          "filter symbol %[1]s must have a numeric, string or boolean type",
	InvalidFilterSubscriptSymbolType: "subscripted filter symbol %[1]s must be a list of numeric, string or boolean",
	InvalidFilterLiteral:             "filter expression %[1]s is not a literal",
	InvalidFilterLiteralType:         "filter literal %[1]s must be a string, integer, float or boolean",
	InvalidFilterInt64Literal:        "operand in %[1]s must be an integer literal",
	InvalidFilterSubscriptType:       "subscript %[1]s must be an integer literal",
	InvalidFilterModSymbol:           "arithmetic operand %[1]s must have an integral type",
	InvalidFilterNotList:             "right operand %[1]s of 'in' must be a list",
	InvalidFilterMismatchType:        "operands of %[1]s have mismatched types: %[2]s and %[3]s",
	InvalidFilterNeedBool:            "operand of %[1]s must be boolean, found %[2]s",
	InvalidBooleanOperator:           "operator %[1]s cannot be applied to a boolean literal",
	FilterSymbolNotInOutput:          "symbol %[1]s is not an attribute of the output stream",
	FilterSymbolHint:                 "did you mean %[1]s?",
	FilterInvalid:                    "filter %[1]s is not a valid filter expression: %[2]s",

	PathIsNotADirectory:           "toolkit path %[1]s is not a directory",
	PathIsDuplicate:               "toolkit path %[1]s duplicates an earlier path",
	MissingToolkit:                "no toolkit was found in %[1]s",
	ToolkitMalformed:              "toolkit descriptor %[1]s could not be loaded: %[2]s",
	SkippingToolkit:               "skipping toolkit %[1]s version %[2]s in %[3]s",
	LoadingToolkit:                "loading toolkit %[1]s version %[2]s from %[3]s",
	UnreconcilableDependencies:    "the toolkit dependencies cannot be reconciled",
	UnreconcilableToolkit:         "toolkit %[1]s version %[2]s requires %[3]s in range %[5]s but version %[4]s was considered",
	ToolkitMismatchProductVersion: "toolkit %[1]s version %[2]s requires product version %[3]s but the compiler version is %[4]s",
	ToolkitDependencyMissing:      "toolkit %[1]s version %[2]s requires toolkit %[3]s in range %[4]s which was not found",
	ToolkitDependencyMismatch:     "toolkit %[1]s version %[2]s requires toolkit %[3]s in range %[4]s but version %[5]s was loaded",
	DuplicateToolkitName:          "%[1]s is defined more than once in toolkit %[2]s",
	DuplicateToolkitNameDefaultNS: "%[1]s is defined more than once in the default namespace of toolkit %[2]s",
	PreviousLocation:              "previous definition of %[1]s",

	RelocatableNotRestartable: "operator %[1]s is relocatable but not restartable",
	PCLPEXConflict:            "partition exlocation %[1]s is violated by operators %[2]s and %[3]s placed in the same partition",
	PCLRestartConflict:        "operators %[1]s and %[2]s are in the same partition but differ in restartability",
	PCLRelocateConflict:       "operators %[1]s and %[2]s are in the same partition but differ in relocatability",
	PCLHEXConflict:            "host exlocation %[1]s is violated by operators %[2]s and %[3]s placed in the same partition",
	PCLPISConflict:            "operator %[1]s requires an isolated partition but shares it with %[2]s",
	HCLHEXConflict:            "host exlocation %[1]s is violated by host colocated operators %[2]s and %[3]s",
	PEXHISConflict:            "host isolated operator %[1]s would need to share a host with operators %[3]s and %[4]s of partition exlocation %[2]s",
	RestartHISConflict:        "host isolated operator %[1]s would fuse operators %[2]s and %[3]s that differ in restartability",
	RelocateHISConflict:       "host isolated operator %[1]s would fuse operators %[2]s and %[3]s that differ in relocatability",
	PISHISConflict:            "host isolated operator %[1]s would share a partition with partition isolated operator %[2]s",
	FusionHISWarning:          "host isolation of operator %[1]s fused the operators %[2]s",
	NeedDefaultPoolSize:       "operator %[1]s has no host placement and the default pool has no size",
	ExclusivePoolConflict:     "operator %[1]s is placed in exclusive pool %[2]s but shares a host with operator %[3]s",
	HPConflict:                "operators %[1]s have no host in common",
	HEXPoolSizeConflict:       "host pool %[2]s of size %[1]d cannot hold the %[3]d host exlocated partitions of %[4]s",
	HEXHISFailure:             "no host assignment satisfying host exlocation and isolation was found after %[1]d attempts",
}

var catalog = func() *message.Printer {
	for id, format := range english {
		if err := message.SetString(language.English, string(id), format); err != nil {
			panic(err)
		}
	}
	return message.NewPrinter(language.English)
}()

// Printer returns a message printer for tag.  Messages not translated
// for tag fall back to English.
func Printer(tag language.Tag) *message.Printer {
	if tag == language.Und {
		return catalog
	}
	return message.NewPrinter(tag)
}

// Format renders id with args in English.
func Format(id ID, args ...any) string {
	return format(catalog, id, args)
}

func format(p *message.Printer, id ID, args []any) string {
	if _, ok := english[id]; !ok {
		return string(id)
	}
	return p.Sprintf(message.Key(string(id), english[id]), args...)
}
