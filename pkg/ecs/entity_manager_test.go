package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testCellComponent struct {
	Col, Row int
}

type testBoxComponent struct {
	W, H, D float32
}

type testTagComponent struct{}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	// ID从1开始
	if id1 != 1 || id2 != 2 {
		t.Errorf("Entity IDs = %d, %d, want 1, 2", id1, id2)
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount = %d, want 2", em.EntityCount())
	}
}

func TestEntityIDsNeverReused(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	em.DestroyEntity(id1)
	em.RemoveMarkedEntities()

	id2 := em.CreateEntity()
	if id2 == id1 {
		t.Errorf("destroyed entity ID %d was reused", id1)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testCellComponent{Col: 3, Row: 4})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testCellComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	cell := comp.(*testCellComponent)
	if cell.Col != 3 || cell.Row != 4 {
		t.Errorf("Component data mismatch, got (%d, %d)", cell.Col, cell.Row)
	}
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()
	em.AddComponent(EntityID(42), &testCellComponent{})
	if em.Exists(42) {
		t.Error("AddComponent should not create entities")
	}
}

func TestHasAndRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	typ := reflect.TypeOf(&testTagComponent{})

	if em.HasComponent(id, typ) {
		t.Error("Should not have component before adding")
	}
	em.AddComponent(id, &testTagComponent{})
	if !em.HasComponent(id, typ) {
		t.Error("Should have component after adding")
	}
	em.RemoveComponent(id, typ)
	if em.HasComponent(id, typ) {
		t.Error("Should not have component after removal")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testCellComponent{})

	// 标记删除
	em.DestroyEntity(id)
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.Exists(id) || !em.IsMarkedForDestroy(id) {
		t.Error("Entity should still exist and be marked before cleanup")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.IsMarkedForDestroy(id) {
		t.Error("mark should be cleared after cleanup")
	}
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount = %d, want 0", em.EntityCount())
	}
}

func TestGetEntitiesWithSorted(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 20)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testCellComponent{Col: i})
		if i%2 == 0 {
			em.AddComponent(id, &testBoxComponent{})
		}
		ids = append(ids, id)
	}

	all := em.GetEntitiesWith(reflect.TypeOf(&testCellComponent{}))
	if len(all) != 20 {
		t.Fatalf("got %d entities, want 20", len(all))
	}
	for i := range all {
		if all[i] != ids[i] {
			t.Fatalf("result not sorted at %d: %v", i, all)
		}
	}

	both := em.GetEntitiesWith(
		reflect.TypeOf(&testCellComponent{}),
		reflect.TypeOf(&testBoxComponent{}),
	)
	if len(both) != 10 {
		t.Errorf("got %d entities with both components, want 10", len(both))
	}
	for i := 1; i < len(both); i++ {
		if both[i-1] >= both[i] {
			t.Fatalf("result not sorted: %v", both)
		}
	}
}
