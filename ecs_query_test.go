package gekko

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type queryComp1 struct{ a int }
type queryComp2 struct{ b float32 }
type queryComp3 struct{}

func queryFixture() (*Ecs, []EntityId) {
	ecs := MakeEcs()
	ids := []EntityId{
		// comp1 only
		ecs.addEntity(queryComp1{a: 1}),
		// comp1 & comp2
		ecs.addEntity(queryComp1{a: 2}, queryComp2{b: 1.37}),
		// comp1 & comp2 + something extra
		ecs.addEntity(queryComp1{a: 3}, queryComp2{b: 4.20}, queryComp3{}),
		// comp1 + something extra
		ecs.addEntity(queryComp1{a: 4}, queryComp3{}),
		// comp2 only
		ecs.addEntity(queryComp2{b: 3.14}),
	}
	return &ecs, ids
}

func TestQuery_Map(t *testing.T) {
	ecs, ids := queryFixture()
	query := Query2[queryComp1, queryComp2]{filter{ecs: ecs}}

	got := map[EntityId]int{}
	query.Map(func(entityId EntityId, comp1 *queryComp1, comp2 *queryComp2) bool {
		got[entityId] = comp1.a
		return true
	})

	assert.Equal(t, map[EntityId]int{ids[1]: 2, ids[2]: 3}, got)
}

func TestQuery_MapWritesThrough(t *testing.T) {
	ecs, ids := queryFixture()

	Query1[queryComp1]{filter{ecs: ecs}}.Map(func(eid EntityId, c *queryComp1) bool {
		c.a *= 10
		return true
	})

	c, _ := getComponent[queryComp1](ecs, ids[3])
	assert.Equal(t, 40, c.a)
}

func TestQuery_Without(t *testing.T) {
	ecs, ids := queryFixture()

	var got []EntityId
	Query1[queryComp1]{filter{ecs: ecs}}.Without(queryComp3{}).Map(func(eid EntityId, c *queryComp1) bool {
		got = append(got, eid)
		return true
	})

	assert.ElementsMatch(t, []EntityId{ids[0], ids[1]}, got)
}

func TestQuery_Optionals(t *testing.T) {
	ecs, ids := queryFixture()

	withB := map[EntityId]bool{}
	Query2[queryComp1, queryComp2]{filter{ecs: ecs}}.Map(func(eid EntityId, a *queryComp1, b *queryComp2) bool {
		withB[eid] = b != nil
		return true
	}, queryComp2{})

	assert.Equal(t, map[EntityId]bool{ids[0]: false, ids[1]: true, ids[2]: true, ids[3]: false}, withB)
}

func TestQuery_StopsEarly(t *testing.T) {
	ecs, _ := queryFixture()

	calls := 0
	Query1[queryComp1]{filter{ecs: ecs}}.Map(func(eid EntityId, c *queryComp1) bool {
		calls++
		return false
	})
	assert.Equal(t, 1, calls)
}

func TestQuery_ThreeAndFour(t *testing.T) {
	ecs, ids := queryFixture()

	var three []EntityId
	Query3[queryComp1, queryComp2, queryComp3]{filter{ecs: ecs}}.Map(func(eid EntityId, a *queryComp1, b *queryComp2, c *queryComp3) bool {
		three = append(three, eid)
		return true
	})
	assert.Equal(t, []EntityId{ids[2]}, three)

	type queryComp4 struct{}
	four := 0
	Query4[queryComp1, queryComp2, queryComp3, queryComp4]{filter{ecs: ecs}}.Map(func(eid EntityId, a *queryComp1, b *queryComp2, c *queryComp3, d *queryComp4) bool {
		four++
		assert.Nil(t, d)
		return true
	}, queryComp4{})
	assert.Equal(t, 1, four)
}
