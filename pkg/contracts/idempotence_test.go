package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdempotenceClass_String(t *testing.T) {
	assert.Equal(t, "read", Read.String())
	assert.Equal(t, "client_keyed_write", ClientKeyedWrite.String())
	assert.Equal(t, "unclassified_write", UnclassifiedWrite.String())
	assert.Equal(t, "unknown", IdempotenceClass(99).String())
}

func TestRoles_RolesForUnknownMethodReturnsNil(t *testing.T) {
	r := Roles{"Chain.Execute": {"operate_chains"}}
	assert.Nil(t, r.RolesFor("Chain.NotAMethod"))
	assert.Equal(t, []string{"operate_chains"}, r.RolesFor("Chain.Execute"))
}

func TestMerge_LaterMapWinsOnCollision(t *testing.T) {
	a := Roles{"shared": {"role-a"}, "only-a": {"a"}}
	b := Roles{"shared": {"role-b"}, "only-b": {"b"}}

	merged := Merge(a, b)
	assert.Equal(t, []string{"role-b"}, merged["shared"])
	assert.Equal(t, []string{"a"}, merged["only-a"])
	assert.Equal(t, []string{"b"}, merged["only-b"])
}

func TestMerge_AllSixContractRoleMapsCombineWithoutPanicking(t *testing.T) {
	merged := Merge(
		ChainEngineRoles,
		ModelRegistryRoles,
		MemoryRoles,
		RAGManagerRoles,
		PersonaLayerRoles,
		RouterRoles,
	)
	assert.NotEmpty(t, merged)
}
