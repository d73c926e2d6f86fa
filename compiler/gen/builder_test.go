package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapok-dev/kapok/compiler/load"
)

func buildContract(t *testing.T, cfg *Config, d *load.Declaration, wired ...*Contract) *File {
	t.Helper()
	c := mustContract(t, d)
	table := map[string]*Contract{c.QualifiedName(): c}
	for _, w := range wired {
		table[w.QualifiedName()] = w
	}
	return NewBuilder(cfg, NewResolver()).WithWired(table).Build(c)
}

func renderDecl(t *testing.T, d Decl) string {
	t.Helper()
	r := &renderer{}
	r.decl(d, 0)
	return r.b.String()
}

func TestBuild_PlainContract(t *testing.T) {
	f := buildContract(t, MustNewConfig(),
		iface("Greeter", fun("greet", tref("kotlin.String"), arg("name", tref("kotlin.String")))))

	require.Len(t, f.Decls, 3)
	assert.Equal(t, "com.example", f.Package)

	assert.Equal(t, `class FakeGreeter : Greeter {
    var greetBehavior: (String) -> String = { _ -> "" }

    override fun greet(name: String): String = greetBehavior(name)
}`, renderDecl(t, f.Decls[0]))

	assert.Equal(t, `class FakeGreeterScope internal constructor(private val fake: FakeGreeter) {
    fun greet(behavior: (String) -> String) {
        fake.greetBehavior = behavior
    }
}`, renderDecl(t, f.Decls[1]))

	assert.Equal(t, `fun fakeGreeter(configure: FakeGreeterScope.() -> Unit = {}): Greeter {
    val fake = FakeGreeter()
    val scope = FakeGreeterScope(fake)
    scope.configure()
    return fake
}`, renderDecl(t, f.Decls[2]))
}

func TestBuild_UnitMethod(t *testing.T) {
	f := buildContract(t, MustNewConfig(), iface("Pinger", fun("ping", nil)))

	assert.Equal(t, `class FakePinger : Pinger {
    var pingBehavior: () -> Unit = { Unit }

    override fun ping() {
        pingBehavior()
    }
}`, renderDecl(t, f.Decls[0]))
}

func TestBuild_MethodLevelGenerics(t *testing.T) {
	d := iface("Mapper", fun("transform", tref("R"), arg("input", tref("T"))))
	d.Functions[0].TypeParams = []*load.TypeParam{{Name: "T"}, {Name: "R"}}
	f := buildContract(t, MustNewConfig(), d)

	// The slot is type-erased; the override restores the declared types
	// with an unchecked cast.
	assert.Equal(t, `@Suppress("UNCHECKED_CAST")
class FakeMapper : Mapper {
    var transformBehavior: (Any?) -> Any? = { _ -> error("configure a behavior for com.example.Mapper.transform before calling it") }

    override fun <T, R> transform(input: T): R = transformBehavior(input) as R
}`, renderDecl(t, f.Decls[0]))

	// The scope accepts the erased slot type unchanged.
	assert.Equal(t, `class FakeMapperScope internal constructor(private val fake: FakeMapper) {
    fun transform(behavior: (Any?) -> Any?) {
        fake.transformBehavior = behavior
    }
}`, renderDecl(t, f.Decls[1]))
}

func TestBuild_ClassLevelGenerics(t *testing.T) {
	d := iface("Box", fun("value", tref("T")))
	d.TypeParams = []*load.TypeParam{{Name: "T"}}
	f := buildContract(t, MustNewConfig(), d)

	assert.Equal(t, `class FakeBox<T> : Box<T> {
    var valueBehavior: () -> T = { error("configure a behavior for com.example.Box.value before calling it") }

    override fun value(): T = valueBehavior()
}`, renderDecl(t, f.Decls[0]))

	assert.Equal(t, `fun <T> fakeBox(configure: FakeBoxScope<T>.() -> Unit = {}): Box<T> {
    val fake = FakeBox<T>()
    val scope = FakeBoxScope(fake)
    scope.configure()
    return fake
}`, renderDecl(t, f.Decls[2]))
}

func TestBuild_GenericBounds(t *testing.T) {
	d := iface("Sorter", fun("sort", nil, arg("items", tref("kotlin.collections.MutableList", tref("T")))))
	d.TypeParams = []*load.TypeParam{{
		Name:   "T",
		Bounds: []*load.TypeRef{tref("kotlin.Comparable", tref("T2"))},
	}}
	f := buildContract(t, MustNewConfig(), d)

	cls := f.Decls[0].(*ClassNode)
	require.Len(t, cls.TypeParams, 1)
	out := renderDecl(t, f.Decls[0])
	assert.Contains(t, out, "class FakeSorter<T : Comparable<T2>> : Sorter<T> {")
}

func TestBuild_SuspendMethod(t *testing.T) {
	d := iface("Fetcher", fun("fetch", tref("kotlin.String"), arg("url", tref("kotlin.String"))))
	d.Functions[0].Suspend = true
	f := buildContract(t, MustNewConfig(), d)

	assert.Equal(t, `class FakeFetcher : Fetcher {
    var fetchBehavior: suspend (String) -> String = { _ -> "" }

    override suspend fun fetch(url: String): String = fetchBehavior(url)
}`, renderDecl(t, f.Decls[0]))
}

func TestBuild_CallTracking(t *testing.T) {
	cfg := MustNewConfig(WithFeatures(FeatureCallTracking))
	f := buildContract(t, cfg, iface("Counter",
		fun("increment", nil),
		fun("total", tref("kotlin.Int")),
	))

	assert.Equal(t, `class FakeCounter : Counter {
    var incrementBehavior: () -> Unit = { Unit }

    var incrementCalls: Int = 0

    var totalBehavior: () -> Int = { 0 }

    var totalCalls: Int = 0

    override fun increment() {
        incrementCalls += 1
        incrementBehavior()
    }

    override fun total(): Int {
        totalCalls += 1
        return totalBehavior()
    }
}`, renderDecl(t, f.Decls[0]))
}

func TestBuild_VolatileSlots(t *testing.T) {
	cfg := MustNewConfig(WithFeatures(FeatureVolatileSlots))
	d := iface("Gauge", fun("read", tref("kotlin.Double")))
	d.Properties = []*load.Property{{Name: "limit", Type: tref("kotlin.Double"), Mutable: true}}
	f := buildContract(t, cfg, d)

	assert.Equal(t, `class FakeGauge : Gauge {
    @Volatile
    var readBehavior: () -> Double = { 0.0 }

    override fun read(): Double = readBehavior()

    @Volatile
    override var limit: Double = 0.0
}`, renderDecl(t, f.Decls[0]))
}

func TestBuild_Properties(t *testing.T) {
	d := iface("Session", fun("refresh", nil))
	d.Properties = []*load.Property{
		{Name: "token", Type: tref("kotlin.String")},
		{Name: "ttl", Type: tref("kotlin.Long"), Mutable: true},
	}
	f := buildContract(t, MustNewConfig(), d)

	assert.Equal(t, `class FakeSession : Session {
    var refreshBehavior: () -> Unit = { Unit }

    var tokenBehavior: () -> String = { "" }

    override fun refresh() {
        refreshBehavior()
    }

    override val token: String
        get() = tokenBehavior()

    override var ttl: Long = 0L
}`, renderDecl(t, f.Decls[0]))

	assert.Equal(t, `class FakeSessionScope internal constructor(private val fake: FakeSession) {
    fun refresh(behavior: () -> Unit) {
        fake.refreshBehavior = behavior
    }

    fun token(behavior: () -> String) {
        fake.tokenBehavior = behavior
    }

    fun ttl(value: Long) {
        fake.ttl = value
    }
}`, renderDecl(t, f.Decls[1]))
}

func TestBuild_MutablePropertyWithoutDefault(t *testing.T) {
	// A mutable property whose type has no safe default must not fail
	// while the fake is constructed: the construction function runs the
	// configuration block only after instantiating the fake, so the
	// failure has to wait until the property is read unconfigured.
	d := iface("Garage", fun("open", nil))
	d.Properties = []*load.Property{{Name: "engine", Type: tref("com.example.Engine"), Mutable: true}}
	f := buildContract(t, MustNewConfig(), d)

	assert.Equal(t, `class FakeGarage : Garage {
    var openBehavior: () -> Unit = { Unit }

    private var engineBehavior: Engine? = null

    override fun open() {
        openBehavior()
    }

    override var engine: Engine
        get() = engineBehavior ?: error("configure a behavior for com.example.Garage.engine before calling it")
        set(value) { engineBehavior = value }
}`, renderDecl(t, f.Decls[0]))

	// The scope's value setter writes through the accessor into the slot.
	assert.Contains(t, renderDecl(t, f.Decls[1]), `fun engine(value: Engine) {
        fake.engine = value
    }`)
}

func TestBuild_MutablePropertyWired(t *testing.T) {
	// A wired contract type has a safe default, so the property keeps
	// its eager initializer.
	engine := mustContract(t, iface("Engine", fun("start", nil)))
	d := iface("Garage", fun("open", nil))
	d.Properties = []*load.Property{{Name: "engine", Type: tref("com.example.Engine"), Mutable: true}}
	f := buildContract(t, MustNewConfig(), d, engine)

	out := renderDecl(t, f.Decls[0])
	assert.Contains(t, out, "override var engine: Engine = fakeEngine()")
	assert.NotContains(t, out, "engineBehavior")
}

func TestBuild_KeywordEscaping(t *testing.T) {
	d := iface("Matcher", fun("when", tref("kotlin.Boolean"), arg("object", tref("kotlin.String"))))
	f := buildContract(t, MustNewConfig(), d)

	assert.Equal(t, `class FakeMatcher : Matcher {
    var whenBehavior: (String) -> Boolean = { _ -> false }

    override fun `+"`when`(`object`: String): Boolean = whenBehavior(`object`)"+`
}`, renderDecl(t, f.Decls[0]))
}

func TestBuild_OperatorModifier(t *testing.T) {
	d := iface("Index", fun("get", nref("kotlin.String"), arg("key", tref("kotlin.String"))))
	d.Functions[0].Modifiers = []string{"abstract", "operator"}
	f := buildContract(t, MustNewConfig(), d)

	out := renderDecl(t, f.Decls[0])
	assert.Contains(t, out, "override operator fun get(key: String): String? = getBehavior(key)")
	assert.NotContains(t, out, "abstract", "only override-compatible modifiers survive")
}

func TestBuild_AutoWiring(t *testing.T) {
	engine := mustContract(t, iface("Engine", fun("start", nil)))
	d := iface("Car", fun("engine", tref("com.example.Engine")))
	f := buildContract(t, MustNewConfig(), d, engine)

	assert.Contains(t, renderDecl(t, f.Decls[0]),
		"var engineBehavior: () -> Engine = { fakeEngine() }",
		"members returning another faked contract default to its fake")
}

func TestBuild_AutoWiring_NullableStaysNull(t *testing.T) {
	engine := mustContract(t, iface("Engine", fun("start", nil)))
	d := iface("Car", fun("engine", nref("com.example.Engine")))
	f := buildContract(t, MustNewConfig(), d, engine)

	assert.Contains(t, renderDecl(t, f.Decls[0]),
		"var engineBehavior: () -> Engine? = { null }",
		"nullability outranks auto-wiring")
}

func TestBuild_ConstructorNameAnnotation(t *testing.T) {
	d := iface("Greeter", fun("greet", nil))
	d.Annotations = map[string]any{AnnotationConstructorName: "greeterDouble"}
	f := buildContract(t, MustNewConfig(), d)

	fn := f.Decls[2].(*FuncNode)
	assert.Equal(t, "greeterDouble", fn.Name)
}

func TestBuild_ConstructorPrefix(t *testing.T) {
	cfg := MustNewConfig(WithConstructorPrefix("stub"))
	f := buildContract(t, cfg, iface("Greeter", fun("greet", nil)))

	fn := f.Decls[2].(*FuncNode)
	assert.Equal(t, "stubGreeter", fn.Name)
}

func TestBuild_CustomHeader(t *testing.T) {
	cfg := MustNewConfig(WithHeader("Generated for the storage test suite."))
	f := buildContract(t, cfg, iface("Greeter", fun("greet", nil)))
	assert.Equal(t, "Generated for the storage test suite.", f.Header)
}
