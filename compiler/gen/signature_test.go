package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapok-dev/kapok/compiler/load"
)

func TestSignature_Deterministic(t *testing.T) {
	build := func() *Contract {
		return mustContract(t, iface("Repo",
			fun("find", nref("com.example.Entity"), arg("id", tref("kotlin.Long"))),
			fun("delete", nil, arg("id", tref("kotlin.Long"))),
		))
	}
	first := Signature(build())
	second := Signature(build())
	assert.Equal(t, first, second)
	assert.Len(t, string(first), 64, "sha256 hex")
}

func TestSignature_StructureSensitive(t *testing.T) {
	base := Signature(mustContract(t, iface("Repo",
		fun("find", nref("com.example.Entity"), arg("id", tref("kotlin.Long"))),
	)))

	t.Run("return type", func(t *testing.T) {
		c := mustContract(t, iface("Repo",
			fun("find", tref("com.example.Entity"), arg("id", tref("kotlin.Long"))),
		))
		assert.NotEqual(t, base, Signature(c), "dropping nullability changes the fingerprint")
	})

	t.Run("parameter type", func(t *testing.T) {
		c := mustContract(t, iface("Repo",
			fun("find", nref("com.example.Entity"), arg("id", tref("kotlin.String"))),
		))
		assert.NotEqual(t, base, Signature(c))
	})

	t.Run("suspend marker", func(t *testing.T) {
		d := iface("Repo", fun("find", nref("com.example.Entity"), arg("id", tref("kotlin.Long"))))
		d.Functions[0].Suspend = true
		assert.NotEqual(t, base, Signature(mustContract(t, d)))
	})

	t.Run("contract identity", func(t *testing.T) {
		c := mustContract(t, iface("OtherRepo",
			fun("find", nref("com.example.Entity"), arg("id", tref("kotlin.Long"))),
		))
		assert.NotEqual(t, base, Signature(c))
	})
}

func TestSignature_OrderSensitive(t *testing.T) {
	a := mustContract(t, iface("S", fun("first", nil), fun("second", nil)))
	b := mustContract(t, iface("S", fun("second", nil), fun("first", nil)))
	assert.NotEqual(t, Signature(a), Signature(b), "member order is part of the structure")
}

func TestSignature_ParameterNamesIgnored(t *testing.T) {
	a := mustContract(t, iface("S", fun("call", nil, arg("id", tref("kotlin.Long")))))
	b := mustContract(t, iface("S", fun("call", nil, arg("key", tref("kotlin.Long")))))
	assert.Equal(t, Signature(a), Signature(b), "renaming a parameter is a cosmetic edit")
}

func TestSignature_Generics(t *testing.T) {
	d := iface("Box", fun("value", tref("T")))
	d.TypeParams = []*load.TypeParam{{Name: "T"}}
	withParam := Signature(mustContract(t, d))

	plain := Signature(mustContract(t, iface("Box", fun("value", tref("T")))))
	assert.NotEqual(t, plain, withParam)

	variant := iface("Box", fun("value", tref("T")))
	variant.TypeParams = []*load.TypeParam{{Name: "T", Variance: "out"}}
	assert.NotEqual(t, withParam, Signature(mustContract(t, variant)), "variance is structural")
}

func TestSignature_Properties(t *testing.T) {
	d := iface("S", fun("call", nil))
	d.Properties = []*load.Property{{Name: "state", Type: tref("kotlin.Int")}}
	readonly := Signature(mustContract(t, d))

	d2 := iface("S", fun("call", nil))
	d2.Properties = []*load.Property{{Name: "state", Type: tref("kotlin.Int"), Mutable: true}}
	mutable := Signature(mustContract(t, d2))

	require.NotEqual(t, readonly, mutable, "mutability is structural")
}
