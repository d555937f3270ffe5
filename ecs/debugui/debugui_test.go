package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/boringgame/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct {
	X, Y float64
}

type label struct {
	Text   string
	Hidden bool
	count  int
}

type stack struct {
	Size  uint8
	Depth int16
	Ratio *float32
}

func newStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[position](registry)
	ecs.RegisterComponent[label](registry)
	RegisterComponents(registry)
	return ecs.NewStorage(registry)
}

func TestEntityBrowserRefresh(t *testing.T) {
	storage := newStorage()
	a := storage.Spawn(position{})
	b := storage.Spawn(position{}, label{Text: "ship"})
	c := storage.Spawn(label{Text: "rock"})
	storage.CreateEntity()

	browser := NewEntityBrowserWindow(2)
	browser.Refresh(storage)

	require.Len(t, browser.Filtered(), 3)
	ids := []ecs.EntityId{}
	for _, info := range browser.Filtered() {
		ids = append(ids, info.ID)
	}
	assert.Equal(t, []ecs.EntityId{a, b, c}, ids)
	assert.Len(t, browser.Page(), 2)

	browser.SetFilter("LABEL")
	filtered := browser.Filtered()
	require.Len(t, filtered, 2)
	assert.Equal(t, b, filtered[0].ID)
	assert.Equal(t, []string{"debugui.label", "debugui.position"}, filtered[0].ComponentTypes)

	storage.Delete(b)
	browser.Refresh(storage)
	require.Len(t, browser.Filtered(), 1)
	assert.Equal(t, c, browser.Filtered()[0].ID)
}

func TestEntityBrowserPaging(t *testing.T) {
	storage := newStorage()
	for range 5 {
		storage.Spawn(position{})
	}

	browser := NewEntityBrowserWindow(2)
	browser.Refresh(storage)
	assert.Equal(t, 3, browser.pageCount())

	browser.page = 2
	assert.Len(t, browser.Page(), 1)

	browser.page = 7
	assert.Empty(t, browser.Page())

	browser.SetFilter("")
	assert.Equal(t, 0, browser.page)
}

func TestFields(t *testing.T) {
	fields := Fields(reflect.TypeFor[label]())
	require.Len(t, fields, 2)
	assert.Equal(t, "Text", fields[0].Name)
	assert.Equal(t, "Hidden", fields[1].Name)
	assert.Same(t, &fields[0], &Fields(reflect.TypeFor[label]())[0])

	ptrFields := Fields(reflect.TypeFor[stack]())
	require.Len(t, ptrFields, 3)
	assert.True(t, ptrFields[2].IsPointer)
	assert.Equal(t, reflect.TypeFor[float32](), ptrFields[2].Type)

	assert.Empty(t, Fields(reflect.TypeFor[int]()))
}

func TestSetNumber(t *testing.T) {
	var s stack
	val := reflect.ValueOf(&s).Elem()

	assert.True(t, setNumber(val.Field(0), 200))
	assert.Equal(t, uint8(200), s.Size)
	assert.False(t, setNumber(val.Field(0), 300))
	assert.False(t, setNumber(val.Field(0), -1))
	assert.Equal(t, uint8(200), s.Size)

	assert.True(t, setNumber(val.Field(1), -12))
	assert.Equal(t, int16(-12), s.Depth)

	var p position
	assert.True(t, setNumber(reflect.ValueOf(&p).Elem().Field(1), 2.5))
	assert.Equal(t, 2.5, p.Y)

	assert.False(t, setNumber(reflect.ValueOf(p).Field(0), 1), "unaddressable values are not set")
	assert.False(t, setNumber(reflect.ValueOf(&label{}).Elem().Field(0), 1))
}

func TestPerformanceWindowAverage(t *testing.T) {
	perf := NewPerformanceWindow(nil, 3)
	assert.Zero(t, perf.AverageFrameTime())

	perf.Record(0.010)
	perf.Record(0.020)
	assert.InDelta(t, 15, perf.AverageFrameTime(), 1e-3)

	perf.Record(0.030)
	perf.Record(0.040)
	assert.InDelta(t, 30, perf.AverageFrameTime(), 1e-3)
}

func TestSpawnWindows(t *testing.T) {
	storage := newStorage()
	player := storage.Spawn(position{})

	Spawn(storage, ecs.NewScheduler(storage), player)

	assert.Equal(t, 1, ecs.NewView[struct{ *EntityBrowserWindow }](storage).Count())
	assert.Equal(t, 1, ecs.NewView[struct{ *InspectorWindow }](storage).Count())
	assert.Equal(t, 1, ecs.NewView[struct{ *PerformanceWindow }](storage).Count())
	assert.Equal(t, player, ecs.NewSingleton[Selection](storage).Get().Entity)
}
