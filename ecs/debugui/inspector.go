package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/boringgame/ecs"
)

// InspectorWindow shows and edits the components of the selected entity.
type InspectorWindow struct {
	entity ecs.EntityId
}

func NewInspectorWindow() InspectorWindow {
	return InspectorWindow{}
}

func (ci *InspectorWindow) Render(storage *ecs.Storage, selected ecs.EntityId) {
	if !imgui.BeginV("Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	ci.entity = selected

	if !ci.entity.IsValid() {
		imgui.Text("No entity selected")
		return
	}
	if !storage.Alive(ci.entity) {
		imgui.Text(fmt.Sprintf("Entity %d was deleted", ci.entity))
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", ci.entity))
	imgui.Separator()

	for _, compType := range storage.ComponentTypes(ci.entity) {
		component := storage.GetComponent(ci.entity, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeExStrV(compType.String(), imgui.TreeNodeFlagsDefaultOpen) {
			ci.renderValue(compType.Name(), reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}
}

func (ci *InspectorWindow) renderValue(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		if imgui.InputInt(name, &v) {
			setNumber(val, float64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		if imgui.InputInt(name, &v) {
			setNumber(val, float64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		if imgui.InputFloat(name, &v) {
			setNumber(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		if imgui.InputTextWithHint(name, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		fields := Fields(val.Type())
		if len(fields) == 0 {
			imgui.Text(fmt.Sprintf("%s (tag)", name))
			return
		}
		for _, field := range fields {
			fieldVal := val.Field(field.Index)
			if field.IsPointer {
				if fieldVal.IsNil() {
					imgui.Text(fmt.Sprintf("%s: nil", field.Name))
					continue
				}
				fieldVal = fieldVal.Elem()
			}
			if fieldVal.Kind() == reflect.Struct && imgui.TreeNodeStr(field.Name) {
				ci.renderValue(field.Name, fieldVal)
				imgui.TreePop()
				continue
			}
			if fieldVal.Kind() != reflect.Struct {
				ci.renderValue(field.Name, fieldVal)
			}
		}

	case reflect.Slice, reflect.Array:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
