package gandalf

// The AST is a pair of closed sums: Expr for expressions and Stmt for
// statements. Nodes are immutable once the parser produces them.

// An Expr is any expression node.
type Expr interface {
	exprNode()
}

// A Stmt is any statement node.
type Stmt interface {
	stmtNode()
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	Value float64
}

// StringLit is a string literal, already unescaped.
type StringLit struct {
	Value string
}

// BoolLit is a true or false literal.
type BoolLit struct {
	Value bool
}

// NilLit is a nil (or none) literal.
type NilLit struct{}

// Var is a reference to a name in the environment.
type Var struct {
	Name string
}

// UnaryNeg is prefix numeric negation.
type UnaryNeg struct {
	Expr Expr
}

// BinOp is a binary operation. Op is the operator's token kind.
type BinOp struct {
	Left  Expr
	Op    tokenKind
	Right Expr
}

// Call is a call to a spell or built-in function by name.
type Call struct {
	Name string
	Args []Expr
}

// Invoke is a capability-restricted call to an external target named by a
// string literal, with arguments introduced by 'with'.
type Invoke struct {
	Target string
	Args   []Expr
}

// ListLit is a list literal.
type ListLit struct {
	Items []Expr
}

// MapEntry is one key-value pair of a map literal.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// MapLit is a map literal.
type MapLit struct {
	Entries []MapEntry
}

// Index is postfix indexing, target[index].
type Index struct {
	Target Expr
	Index  Expr
}

func (*IntLit) exprNode()    {}
func (*FloatLit) exprNode()  {}
func (*StringLit) exprNode() {}
func (*BoolLit) exprNode()   {}
func (*NilLit) exprNode()    {}
func (*Var) exprNode()       {}
func (*UnaryNeg) exprNode()  {}
func (*BinOp) exprNode()     {}
func (*Call) exprNode()      {}
func (*Invoke) exprNode()    {}
func (*ListLit) exprNode()   {}
func (*MapLit) exprNode()    {}
func (*Index) exprNode()     {}

// Inscribe assigns the value of Expr to Name under the environment's assign
// contract.
type Inscribe struct {
	Name string
	Expr Expr
}

// Proclaim prints the value of Expr through the region-aware formatter.
type Proclaim struct {
	Expr Expr
}

// ExprStmt evaluates Expr and discards its result.
type ExprStmt struct {
	Expr Expr
}

// If executes Then or Else depending on the truthiness of Cond.
type If struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
}

// While re-evaluates Cond before every iteration of Body.
type While struct {
	Cond Expr
	Body []Stmt
}

// SpellDef registers a spell in the global spell table. Redefinition
// overwrites silently.
type SpellDef struct {
	Name   string
	Params []string
	Body   []Stmt
}

// Return unwinds to the nearest enclosing spell call. Expr may be nil.
type Return struct {
	Expr Expr
}

// InRegion pushes Region for the duration of Body. The pop is guaranteed
// even while an error or return is propagating.
type InRegion struct {
	Region string
	Body   []Stmt
}

// BePersona sets the current persona tag.
type BePersona struct {
	Persona string
}

// ArtifactStmt applies an artifact verb to the named artifact.
type ArtifactStmt struct {
	Verb     ArtifactVerb
	Artifact string
}

func (*Inscribe) stmtNode()     {}
func (*Proclaim) stmtNode()     {}
func (*ExprStmt) stmtNode()     {}
func (*If) stmtNode()           {}
func (*While) stmtNode()        {}
func (*SpellDef) stmtNode()     {}
func (*Return) stmtNode()       {}
func (*InRegion) stmtNode()     {}
func (*BePersona) stmtNode()    {}
func (*ArtifactStmt) stmtNode() {}
