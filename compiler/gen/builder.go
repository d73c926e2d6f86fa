package gen

// Builder assembles the code model for a classified contract: the fake
// implementation class (one behavior slot and one override per member),
// the configuration scope (one setter-like entry point per slot), and the
// construction function applying a caller-supplied configuration block.
type Builder struct {
	cfg      *Config
	resolver *Resolver
	// wired maps qualified names of other faked contracts available for
	// auto-wiring defaults.
	wired map[string]*Contract
}

// NewBuilder creates a builder for the given configuration and
// default-value resolver.
func NewBuilder(cfg *Config, resolver *Resolver) *Builder {
	return &Builder{cfg: cfg, resolver: resolver, wired: make(map[string]*Contract)}
}

// WithWired supplies the contracts available for auto-wiring.
func (b *Builder) WithWired(wired map[string]*Contract) *Builder {
	if wired != nil {
		b.wired = wired
	}
	return b
}

// Build consumes the classified contract and produces the code model for
// its generated unit. The model is built fresh per call and owned by the
// caller.
func (b *Builder) Build(c *Contract) *File {
	fake := b.fakeClass(c)
	scope := b.scopeClass(c)
	ctor := b.constructionFunc(c)
	return &File{
		Header:  b.cfg.header(),
		Package: c.Package,
		Decls:   []Decl{fake, scope, ctor},
	}
}

// classGeneric reports whether the generated types themselves must be
// generic, per the classifier tag.
func classGeneric(c *Contract) bool {
	return c.Shape == ClassLevelGenerics || c.Shape == MixedGenerics
}

// erased reports whether the method's behavior slot must be type-erased:
// method-level type parameters cannot appear in a property type, so the
// slot falls back to Any? with an unchecked cast in the override.
func erased(m *Method) bool {
	return len(m.TypeParams) > 0
}

func (b *Builder) fakeClass(c *Contract) *ClassNode {
	cls := &ClassNode{
		Name:       fakeClassName(c),
		TypeParams: b.typeParamNodes(c, c.TypeParams),
		Supertypes: []TypeNode{b.contractType(c)},
	}
	if !classGeneric(c) {
		cls.TypeParams = nil
	}
	for _, m := range c.Methods {
		if erased(m) && !returnsUnit(m) {
			cls.Annotations = []string{`@Suppress("UNCHECKED_CAST")`}
			break
		}
	}
	tracking := b.cfg.featureOn(FeatureCallTracking)
	// Behavior slots first, overrides after, both in declaration order.
	for _, m := range c.Methods {
		cls.Members = append(cls.Members, b.methodSlot(c, m))
		if tracking {
			cls.Members = append(cls.Members, b.callCounter(m))
		}
	}
	for _, p := range c.Properties {
		switch {
		case !p.Mutable:
			cls.Members = append(cls.Members, b.propertySlot(c, p))
		case b.needsBackingSlot(p):
			cls.Members = append(cls.Members, b.backingSlot(c, p))
		}
	}
	for _, m := range c.Methods {
		cls.Members = append(cls.Members, b.methodOverride(c, m, tracking))
	}
	for _, p := range c.Properties {
		cls.Members = append(cls.Members, b.propertyOverride(c, p))
	}
	return cls
}

// methodSlot builds the behavior-slot property for a method.
func (b *Builder) methodSlot(c *Contract, m *Method) *PropNode {
	return &PropNode{
		Annotations: b.slotAnnotations(),
		Mutable:     true,
		Name:        slotName(m.Name),
		Type:        b.slotType(c, m),
		Init:        b.slotDefault(c, m),
	}
}

// slotType is the function type of a method's behavior slot. Erased slots
// replace every method-level generic type with Any?.
func (b *Builder) slotType(c *Contract, m *Method) TypeNode {
	lt := &LambdaType{Suspend: m.Suspend}
	for _, p := range m.Params {
		lt.Params = append(lt.Params, b.slotParamType(c, m, p.Type))
	}
	if !returnsUnit(m) {
		lt.Return = b.slotParamType(c, m, m.Return)
	}
	return lt
}

func (b *Builder) slotParamType(c *Contract, m *Method, t *Type) TypeNode {
	if erased(m) {
		return &NullableType{Elem: &SimpleType{Name: "Any"}}
	}
	return b.typeNode(c, t)
}

// slotDefault is the default lambda stored in a behavior slot. The body
// is the resolved default for the declared return type, so an erased slot
// still defaults according to the member's real signature.
func (b *Builder) slotDefault(c *Contract, m *Method) Expression {
	blanks := make([]string, len(m.Params))
	for i := range blanks {
		blanks[i] = "_"
	}
	return &Lambda{Params: blanks, Body: b.memberDefault(c, m.Name, m.Return)}
}

// memberDefault resolves the default expression for a member type,
// preferring an auto-wired fake for members returning another faked
// contract. Nullable types still default to null: the nullable strategy
// outranks auto-wiring.
func (b *Builder) memberDefault(c *Contract, member string, t *Type) Expression {
	if t == nil || t.IsUnit() {
		return &Literal{Text: "Unit"}
	}
	if !t.Nullable {
		if dep, ok := b.wired[t.Name]; ok {
			return &Call{Callee: b.ctorName(dep)}
		}
	}
	return b.resolver.ResolveMember(c.QualifiedName(), member, t)
}

func (b *Builder) callCounter(m *Method) *PropNode {
	return &PropNode{
		Mutable: true,
		Name:    callsName(m.Name),
		Type:    &SimpleType{Name: "Int"},
		Init:    &Literal{Text: "0"},
	}
}

// methodOverride builds the override delegating to the behavior slot.
func (b *Builder) methodOverride(c *Contract, m *Method, tracking bool) *FuncNode {
	fn := &FuncNode{
		Modifiers:  overrideModifiers(m),
		Suspend:    m.Suspend,
		TypeParams: b.typeParamNodes(c, m.TypeParams),
		Name:       escapeIdent(m.Name),
	}
	for _, p := range m.Params {
		fn.Params = append(fn.Params, &ParamNode{Name: escapeIdent(p.Name), Type: b.typeNode(c, p.Type)})
	}
	unit := returnsUnit(m)
	if !unit {
		fn.Return = b.typeNode(c, m.Return)
	}
	var invoke Expression = &Call{Callee: slotName(m.Name), Args: paramRefs(m)}
	if erased(m) && !unit {
		invoke = &Cast{Expr: invoke, To: fn.Return}
	}
	switch {
	case tracking && unit:
		fn.Body = []Stmt{
			&AssignStmt{Target: callsName(m.Name), Op: "+=", Value: &Literal{Text: "1"}},
			&ExprStmt{E: invoke},
		}
	case tracking:
		fn.Body = []Stmt{
			&AssignStmt{Target: callsName(m.Name), Op: "+=", Value: &Literal{Text: "1"}},
			&ReturnStmt{E: invoke},
		}
	case unit:
		fn.Body = []Stmt{&ExprStmt{E: invoke}}
	default:
		fn.ExprBody = invoke
	}
	return fn
}

// propertySlot builds the behavior slot backing a read-only property.
func (b *Builder) propertySlot(c *Contract, p *Property) *PropNode {
	return &PropNode{
		Annotations: b.slotAnnotations(),
		Mutable:     true,
		Name:        slotName(p.Name),
		Type:        &LambdaType{Return: b.typeNode(c, p.Type)},
		Init:        &Lambda{Body: b.memberDefault(c, p.Name, p.Type)},
	}
}

// needsBackingSlot reports whether a mutable property must be backed by
// a nullable slot instead of an eager initializer. An eager fallback
// initializer would throw while the fake is constructed, before any
// configuration block could run, so a type without a safe default gets
// a getter that fails only when read unconfigured.
func (b *Builder) needsBackingSlot(p *Property) bool {
	if !p.Mutable {
		return false
	}
	t := p.Type
	if t == nil || t.IsUnit() || t.Nullable {
		return false
	}
	if _, ok := b.wired[t.Name]; ok {
		return false
	}
	return !b.resolver.Defaultable(t)
}

// backingSlot builds the nullable storage behind a mutable property
// without a safe eager default.
func (b *Builder) backingSlot(c *Contract, p *Property) *PropNode {
	return &PropNode{
		Annotations: b.slotAnnotations(),
		Modifiers:   []string{"private"},
		Mutable:     true,
		Name:        slotName(p.Name),
		Type:        &NullableType{Elem: b.typeNode(c, p.Type)},
		Init:        &Null{},
	}
}

// propertyOverride builds the override for a property. A mutable property
// is its own behavior slot: the stored value, initialized to the resolved
// default, or an accessor pair over the nullable backing slot when no
// safe default exists. A read-only property delegates its getter to the
// slot.
func (b *Builder) propertyOverride(c *Contract, p *Property) *PropNode {
	node := &PropNode{
		Modifiers: []string{"override"},
		Mutable:   p.Mutable,
		Name:      escapeIdent(p.Name),
		Type:      b.typeNode(c, p.Type),
	}
	switch {
	case p.Mutable && b.needsBackingSlot(p):
		node.Getter = &Elvis{
			Lhs: &Raw{Text: slotName(p.Name)},
			Rhs: fallbackError(c.QualifiedName(), p.Name),
		}
		node.Setter = &AssignStmt{Target: slotName(p.Name), Op: "=", Value: &Raw{Text: "value"}}
	case p.Mutable:
		node.Annotations = b.slotAnnotations()
		node.Init = b.memberDefault(c, p.Name, p.Type)
	default:
		node.Getter = &Call{Callee: slotName(p.Name)}
	}
	return node
}

// scopeClass builds the configuration surface: one setter-like entry
// point per behavior slot.
func (b *Builder) scopeClass(c *Contract) *ClassNode {
	cls := &ClassNode{
		Name:       scopeClassName(c),
		TypeParams: nil,
		Ctor: &CtorNode{
			Modifiers: []string{"internal"},
			Params: []*CtorParamNode{{
				Modifiers: []string{"private"},
				Keyword:   "val",
				Name:      "fake",
				Type:      b.fakeType(c),
			}},
		},
	}
	if classGeneric(c) {
		cls.TypeParams = b.typeParamNodes(c, c.TypeParams)
	}
	for _, m := range c.Methods {
		cls.Members = append(cls.Members, &FuncNode{
			Name:   escapeIdent(m.Name),
			Params: []*ParamNode{{Name: "behavior", Type: b.slotType(c, m)}},
			Body: []Stmt{
				&AssignStmt{Target: "fake." + slotName(m.Name), Op: "=", Value: &Raw{Text: "behavior"}},
			},
		})
	}
	for _, p := range c.Properties {
		if p.Mutable {
			cls.Members = append(cls.Members, &FuncNode{
				Name:   escapeIdent(p.Name),
				Params: []*ParamNode{{Name: "value", Type: b.typeNode(c, p.Type)}},
				Body: []Stmt{
					&AssignStmt{Target: "fake." + escapeIdent(p.Name), Op: "=", Value: &Raw{Text: "value"}},
				},
			})
			continue
		}
		cls.Members = append(cls.Members, &FuncNode{
			Name:   escapeIdent(p.Name),
			Params: []*ParamNode{{Name: "behavior", Type: &LambdaType{Return: b.typeNode(c, p.Type)}}},
			Body: []Stmt{
				&AssignStmt{Target: "fake." + slotName(p.Name), Op: "=", Value: &Raw{Text: "behavior"}},
			},
		})
	}
	return cls
}

// constructionFunc builds the factory: it instantiates the fake, applies
// the caller's configuration block through the scope, and returns the
// fake typed as the contract.
func (b *Builder) constructionFunc(c *Contract) *FuncNode {
	fn := &FuncNode{
		Name: b.ctorName(c),
		Params: []*ParamNode{{
			Name:    "configure",
			Type:    &LambdaType{Receiver: b.scopeType(c)},
			Default: &Lambda{},
		}},
		Return: b.contractType(c),
	}
	if classGeneric(c) {
		fn.TypeParams = b.typeParamNodes(c, c.TypeParams)
	}
	newFake := &Call{Callee: fakeClassName(c)}
	if classGeneric(c) {
		newFake.TypeArgs = b.typeParamRefs(c)
	}
	fn.Body = []Stmt{
		&ValStmt{Name: "fake", Init: newFake},
		&ValStmt{Name: "scope", Init: &Call{Callee: scopeClassName(c), Args: []Expression{&Raw{Text: "fake"}}}},
		&ExprStmt{E: &Call{Callee: "scope.configure"}},
		&ReturnStmt{E: &Raw{Text: "fake"}},
	}
	return fn
}

// ctorName returns the construction-function name for a contract,
// honoring the per-contract naming annotation, then the configured
// prefix.
func (b *Builder) ctorName(c *Contract) string {
	if c.Annotations != nil {
		if name, ok := c.Annotations[AnnotationConstructorName].(string); ok && name != "" {
			return name
		}
	}
	return constructorName(b.cfg.constructorPrefix(), c.Name)
}

func (b *Builder) slotAnnotations() []string {
	if b.cfg.featureOn(FeatureVolatileSlots) {
		return []string{"@Volatile"}
	}
	return nil
}

// contractType is the contract supertype reference, generic when the
// contract is.
func (b *Builder) contractType(c *Contract) TypeNode {
	return b.namedType(escapeIdent(c.Name), c)
}

// fakeType is the generated implementation type reference.
func (b *Builder) fakeType(c *Contract) TypeNode {
	return b.namedType(fakeClassName(c), c)
}

// scopeType is the configuration-surface type reference.
func (b *Builder) scopeType(c *Contract) TypeNode {
	return b.namedType(scopeClassName(c), c)
}

func (b *Builder) namedType(name string, c *Contract) TypeNode {
	if !classGeneric(c) {
		return &SimpleType{Name: name}
	}
	return &GenericType{Name: name, Args: b.typeParamRefs(c)}
}

func (b *Builder) typeParamRefs(c *Contract) []TypeNode {
	refs := make([]TypeNode, len(c.TypeParams))
	for i, tp := range c.TypeParams {
		refs[i] = &SimpleType{Name: tp.Name}
	}
	return refs
}

func (b *Builder) typeParamNodes(c *Contract, params []*TypeParam) []*TypeParamNode {
	if len(params) == 0 {
		return nil
	}
	out := make([]*TypeParamNode, len(params))
	for i, tp := range params {
		node := &TypeParamNode{Name: tp.Name}
		for _, bound := range tp.Bounds {
			node.Bounds = append(node.Bounds, b.typeNode(c, bound))
		}
		out[i] = node
	}
	return out
}

// typeNode converts a type descriptor to its rendered form, stripping
// auto-imported and same-package qualifiers.
func (b *Builder) typeNode(c *Contract, t *Type) TypeNode {
	if t == nil {
		return nil
	}
	name := displayTypeName(t.Name, c.Package)
	var node TypeNode
	if len(t.Args) > 0 {
		g := &GenericType{Name: name}
		for _, a := range t.Args {
			g.Args = append(g.Args, b.typeNode(c, a))
		}
		node = g
	} else {
		node = &SimpleType{Name: name}
	}
	if t.Nullable {
		node = &NullableType{Elem: node}
	}
	return node
}

func returnsUnit(m *Method) bool {
	return m.Return == nil || m.Return.IsUnit()
}

func paramRefs(m *Method) []Expression {
	refs := make([]Expression, len(m.Params))
	for i, p := range m.Params {
		refs[i] = &Raw{Text: escapeIdent(p.Name)}
	}
	return refs
}

func overrideModifiers(m *Method) []string {
	mods := []string{"override"}
	for _, mod := range m.Modifiers {
		if mod == "operator" || mod == "infix" {
			mods = append(mods, mod)
		}
	}
	return mods
}
