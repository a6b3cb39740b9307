package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testWindowComponent struct {
	Start, Duration int
}

type testZComponent struct {
	Z int
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	if id1 != 1 || id2 != 2 {
		t.Errorf("Entity IDs should start at 1, got %d and %d", id1, id2)
	}
	if em.Count() != 2 {
		t.Errorf("Expected 2 entities, got %d", em.Count())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testWindowComponent{Start: 15, Duration: 135})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testWindowComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	w := comp.(*testWindowComponent)
	if w.Start != 15 || w.Duration != 135 {
		t.Errorf("Component data mismatch, got %+v", w)
	}

	// 泛型版本
	typed, ok := Get[*testWindowComponent](em, id)
	if !ok || typed != w {
		t.Errorf("Get[*testWindowComponent] = (%v, %v), want the same pointer", typed, ok)
	}
	if _, ok := Get[*testZComponent](em, id); ok {
		t.Error("Get should report missing component")
	}
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()
	em.AddComponent(42, &testZComponent{Z: 1})
	if em.HasComponent(42, TypeOf[*testZComponent]()) {
		t.Error("Component should not be attached to a non-existent entity")
	}
	if em.Exists(42) {
		t.Error("Entity 42 should not exist")
	}
}

func TestRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testZComponent{Z: 3})

	em.RemoveComponent(id, TypeOf[*testZComponent]())
	if em.HasComponent(id, TypeOf[*testZComponent]()) {
		t.Error("Component should be removed")
	}
}

func TestDestroyEntityDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testZComponent{Z: 1})

	em.DestroyEntity(id)
	if !em.Exists(id) {
		t.Error("Entity should still exist before RemoveMarkedEntities")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed after RemoveMarkedEntities")
	}
	if _, found := em.GetComponent(id, TypeOf[*testZComponent]()); found {
		t.Error("Components of a destroyed entity should be gone")
	}
}

func TestGetEntitiesWithSorted(t *testing.T) {
	em := NewEntityManager()
	var withBoth []EntityID
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testWindowComponent{Start: i})
		if i%2 == 0 {
			em.AddComponent(id, &testZComponent{Z: i})
			withBoth = append(withBoth, id)
		}
	}

	for round := 0; round < 5; round++ {
		got := em.GetEntitiesWith(TypeOf[*testWindowComponent](), TypeOf[*testZComponent]())
		if !reflect.DeepEqual(got, withBoth) {
			t.Fatalf("round %d: GetEntitiesWith = %v, want %v", round, got, withBoth)
		}
	}

	all := em.GetEntitiesWith()
	if len(all) != 20 {
		t.Errorf("Empty query should match all 20 entities, got %d", len(all))
	}
}
