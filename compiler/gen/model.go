package gen

// The code model is the declarative intermediate representation of the
// source to be generated. It is tree-shaped, built fresh per generation by
// the Builder, consumed exactly once by Render and then discarded. The
// renderer must handle every node kind defined here; an unhandled kind is
// an internal defect and panics.
type (
	// File is the root node: one logical generated unit per contract.
	File struct {
		// Header is the generated-code header comment, without markers.
		Header string
		// Package is the declaring package of the generated unit.
		Package string
		// Decls holds the top-level declarations in render order.
		Decls []Decl
	}

	// ClassNode declares a class.
	ClassNode struct {
		Annotations []string
		Modifiers   []string
		Name        string
		TypeParams  []*TypeParamNode
		// Ctor is the primary constructor, if any.
		Ctor *CtorNode
		// Supertypes in declaration order.
		Supertypes []TypeNode
		// Members in declaration order, separated by blank lines.
		Members []Decl
	}

	// CtorNode is a primary constructor.
	CtorNode struct {
		Modifiers []string
		Params    []*CtorParamNode
	}

	// CtorParamNode is a primary-constructor parameter, optionally
	// declaring a backing property ("val"/"var").
	CtorParamNode struct {
		Modifiers []string
		Keyword   string // "val", "var" or ""
		Name      string
		Type      TypeNode
	}

	// FuncNode declares a function.
	FuncNode struct {
		Annotations []string
		Modifiers   []string
		Suspend     bool
		TypeParams  []*TypeParamNode
		// Receiver is the extension receiver type, if any.
		Receiver TypeNode
		Name     string
		Params   []*ParamNode
		// Return type. Nil means the unit type.
		Return TypeNode
		// ExprBody is a single-expression body. Mutually exclusive with Body.
		ExprBody Expression
		// Body is a statement-block body.
		Body []Stmt
	}

	// ParamNode is a function parameter with an optional default.
	ParamNode struct {
		Name    string
		Type    TypeNode
		Default Expression
	}

	// PropNode declares a property with either an initializer or an
	// explicit getter.
	PropNode struct {
		Annotations []string
		Modifiers   []string
		Mutable     bool
		Name        string
		Type        TypeNode
		// Init is the initializer expression. Mutually exclusive with Getter.
		Init Expression
		// Getter is an explicit single-expression getter.
		Getter Expression
		// Setter is an explicit setter body assigning the implicit value
		// parameter. Only meaningful together with Getter.
		Setter Stmt
	}

	// TypeParamNode is a declared generic parameter.
	TypeParamNode struct {
		Name   string
		Bounds []TypeNode
	}
)

// Decl is a top-level or member declaration node.
type Decl interface{ decl() }

func (*ClassNode) decl() {}
func (*FuncNode) decl()  {}
func (*PropNode) decl()  {}

// TypeNode is a rendered type reference.
type TypeNode interface{ typeNode() }

type (
	// SimpleType is a plain (possibly dotted) type name.
	SimpleType struct {
		Name string
	}

	// GenericType wraps a base name with an argument list.
	GenericType struct {
		Name string
		Args []TypeNode
	}

	// NullableType appends the nullability marker to its element.
	NullableType struct {
		Elem TypeNode
	}

	// LambdaType is a function type, optionally suspendable and
	// optionally with a receiver.
	LambdaType struct {
		Suspend  bool
		Receiver TypeNode
		Params   []TypeNode
		// Return type. Nil means the unit type.
		Return TypeNode
	}
)

func (*SimpleType) typeNode()   {}
func (*GenericType) typeNode()  {}
func (*NullableType) typeNode() {}
func (*LambdaType) typeNode()   {}

// Expression is a rendered expression node.
type Expression interface{ expr() }

type (
	// Literal is a verbatim literal such as `0`, `""` or `false`.
	Literal struct {
		Text string
	}

	// Null is the null literal.
	Null struct{}

	// Lambda is a lambda expression with blank-insensitive parameters
	// and a single-expression body. A nil body renders an empty lambda.
	Lambda struct {
		Params []string
		Body   Expression
	}

	// Call invokes a callee (possibly dotted) with optional type
	// arguments and arguments.
	Call struct {
		Callee   string
		TypeArgs []TypeNode
		Args     []Expression
	}

	// Cast renders an unchecked cast of an expression to a type.
	Cast struct {
		Expr Expression
		To   TypeNode
	}

	// Elvis renders the null-coalescing operator.
	Elvis struct {
		Lhs Expression
		Rhs Expression
	}

	// Raw is verbatim expression text.
	Raw struct {
		Text string
	}
)

func (*Literal) expr() {}
func (*Null) expr()    {}
func (*Lambda) expr()  {}
func (*Call) expr()    {}
func (*Cast) expr()    {}
func (*Elvis) expr()   {}
func (*Raw) expr()     {}

// Stmt is a statement inside a block body.
type Stmt interface{ stmt() }

type (
	// ValStmt declares an immutable local.
	ValStmt struct {
		Name string
		Init Expression
	}

	// AssignStmt assigns to a (possibly dotted) target. Op is "=" or a
	// compound operator such as "+=".
	AssignStmt struct {
		Target string
		Op     string
		Value  Expression
	}

	// ExprStmt evaluates an expression for its effect.
	ExprStmt struct {
		E Expression
	}

	// ReturnStmt returns an expression.
	ReturnStmt struct {
		E Expression
	}
)

func (*ValStmt) stmt()    {}
func (*AssignStmt) stmt() {}
func (*ExprStmt) stmt()   {}
func (*ReturnStmt) stmt() {}
