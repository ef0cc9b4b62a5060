package ast

// CallbackContext records why an anonymous function was classified as a
// callback: it is the function-typed argument of some call or construction
// site.
type CallbackContext struct {
	Call       *Node // the CallExpression/NewExpression whose argument this function is
	ArgIndex   int   // 0-based position in Call.Arguments
	TotalFuncs int   // number of function-typed arguments in Call
	Position   int   // 1-based position among function-typed arguments
}

// Attributes is the per-node side table populated by Decorator and Binder.
// Every field is write-once: nothing later mutates it. The zero value means
// "not yet computed" for every field here.
type Attributes struct {
	EnclosingFunction *Node // nearest enclosing FunctionDeclaration/Expression/ArrowFunction, nil at top level
	EnclosingFile     string

	// Naming, set by Decorator.
	DeclaredName  string // explicit id, synthesized method-key name, or "" if anonymous
	ParentName    string // name contributed by an enclosing assignment/declarator, "" if none
	HasParentName bool
	Callback      *CallbackContext // non-nil iff classified as a callback
	AnonIndex     int              // 1-based free-anonymous index, 0 if not a free anonymous
	LabelCache    string           // memoized Label() result, "" until computed
	LabelComputed bool

	// Binding, set by Binder.
	Scope    ScopeRef // the scope this node opens (functions/blocks/catch), nil otherwise
	Resolved *Node     // for Identifier uses: the declaration node it resolved to
	IsGlobal bool      // for Identifier uses: true if resolution fell through to global scope

	// Flow graph vertex cache. internal/flow does not read or write it: the
	// flow graph deduplicates vertices by value when they are interned.
	VertexCache any
}

// ScopeRef is an opaque handle to a binder.Scope, stored here to avoid an
// import cycle between internal/ast and internal/binder. internal/binder
// defines the concrete type and casts through this alias.
type ScopeRef = any
