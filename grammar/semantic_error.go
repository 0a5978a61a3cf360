package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoProduction   = newSemanticError("a grammar needs at least one production")
	semErrUndefinedSym   = newSemanticError("undefined symbol")
	semErrUnusedSymbol   = newSemanticError("unreferenced symbol")
	semErrDuplicateAssoc = newSemanticError("associativity and precedence already assigned")
	semErrDoubleDecl     = newSemanticError("both the replaced symbol and its replacement carry a declaration")
	semErrSRConflict     = newSemanticError("shift/reduce conflict")
	semErrRRConflict     = newSemanticError("reduce/reduce conflict")
)
