package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/starshot/ecs"
)

// ComponentInspector shows and edits the components of one entity.
type ComponentInspector struct{}

func (ci *ComponentInspector) Render(storage *ecs.Storage, entityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if entityId == 0 {
		imgui.Text("No entity selected")
		return
	}
	if !storage.Alive(entityId) {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", entityId))
		return
	}

	archetype := storage.GetArchetypeById(entityId.ArchetypeId())
	imgui.Text(fmt.Sprintf("Entity ID: %d", entityId))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", archetype.ID()))
	imgui.Separator()

	for _, compType := range archetype.Types() {
		component := storage.GetComponent(entityId, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			renderStruct(reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}
}

// renderStruct draws one widget per exported field. val must be addressable
// so edits land in the component storage.
func renderStruct(val reflect.Value) {
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		renderField(field.Name, fieldVal)
	}
}

func renderField(name string, val reflect.Value) {
	label := fmt.Sprintf("##%s", name)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(numberOf(val))
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) {
			setNumber(val, float64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) {
			setNumber(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderStruct(val)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: <%s>", name, val.Type()))
		}
	}
}

func numberOf(val reflect.Value) float64 {
	switch {
	case val.CanInt():
		return float64(val.Int())
	case val.CanUint():
		return float64(val.Uint())
	case val.CanFloat():
		return val.Float()
	}
	return 0
}

// setNumber writes v into an int, uint or float field, ignoring negative
// values for unsigned fields.
func setNumber(val reflect.Value, v float64) {
	if !val.CanSet() {
		return
	}
	switch {
	case val.CanInt():
		val.SetInt(int64(v))
	case val.CanUint():
		if v >= 0 {
			val.SetUint(uint64(v))
		}
	case val.CanFloat():
		val.SetFloat(v)
	}
}
