package ecs

import "testing"

func TestGenericGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testCellComponent{Col: 7, Row: 2})

	cell, ok := GetComponent[*testCellComponent](em, id)
	if !ok || cell.Col != 7 || cell.Row != 2 {
		t.Errorf("GetComponent = %+v, %v", cell, ok)
	}

	// 修改通过指针生效
	cell.Col = 9
	again, _ := GetComponent[*testCellComponent](em, id)
	if again.Col != 9 {
		t.Error("component should be stored by pointer")
	}

	if _, ok := GetComponent[*testBoxComponent](em, id); ok {
		t.Error("missing component should not be found")
	}
	if _, ok := GetComponent[*testCellComponent](em, EntityID(99)); ok {
		t.Error("missing entity should not be found")
	}
}

func TestGenericAddRemove(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testTagComponent{})
	if !HasComponent[*testTagComponent](em, id) {
		t.Fatal("tag should be present after AddComponent")
	}
	RemoveComponent[*testTagComponent](em, id)
	if HasComponent[*testTagComponent](em, id) {
		t.Error("tag should be gone after RemoveComponent")
	}
}

func TestGenericQueries(t *testing.T) {
	em := NewEntityManager()

	a := em.CreateEntity()
	em.AddComponent(a, &testCellComponent{})
	em.AddComponent(a, &testBoxComponent{})
	em.AddComponent(a, &testTagComponent{})

	b := em.CreateEntity()
	em.AddComponent(b, &testCellComponent{})
	em.AddComponent(b, &testBoxComponent{})

	c := em.CreateEntity()
	em.AddComponent(c, &testCellComponent{})

	tests := []struct {
		name string
		got  []EntityID
		want []EntityID
	}{
		{"单组件", GetEntitiesWith1[*testCellComponent](em), []EntityID{a, b, c}},
		{"双组件", GetEntitiesWith2[*testCellComponent, *testBoxComponent](em), []EntityID{a, b}},
		{"三组件", GetEntitiesWith3[*testCellComponent, *testBoxComponent, *testTagComponent](em), []EntityID{a}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.got) != len(tt.want) {
				t.Fatalf("got %v, want %v", tt.got, tt.want)
			}
			for i := range tt.got {
				if tt.got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", tt.got, tt.want)
				}
			}
		})
	}
}

func BenchmarkGetEntitiesWith2(b *testing.B) {
	em := NewEntityManager()
	for i := 0; i < 1000; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testCellComponent{Col: i})
		if i%3 == 0 {
			em.AddComponent(id, &testBoxComponent{})
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*testCellComponent, *testBoxComponent](em)
	}
}
