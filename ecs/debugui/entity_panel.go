package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sailsim/ecs"
)

type entityRow struct {
	id          ecs.EntityId
	label       string
	archetypeID uint32
	components  []string
}

// EntityPanel lists live entities and shows the component values of the selected one.
type EntityPanel struct {
	storage  *ecs.Storage
	label    func(ecs.EntityId) string
	selected ecs.EntityId
}

// NewEntityPanel creates a panel for storage. label may be nil; it names
// entities in the list.
func NewEntityPanel(storage *ecs.Storage, label func(ecs.EntityId) string) *EntityPanel {
	return &EntityPanel{storage: storage, label: label}
}

func (ep *EntityPanel) Item() ImguiItem {
	return ImguiItem{Render: ep.Render}
}

func (ep *EntityPanel) rows() []entityRow {
	var rows []entityRow
	for _, archetype := range ep.storage.Archetypes() {
		names := make([]string, len(archetype.Types()))
		for i, typ := range archetype.Types() {
			names[i] = typ.Name()
		}
		for _, id := range archetype.Iter() {
			row := entityRow{
				id:          id,
				label:       fmt.Sprintf("%d", id.Index()),
				archetypeID: archetype.ID(),
				components:  names,
			}
			if ep.label != nil {
				if l := ep.label(id); l != "" {
					row.label = l
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func (ep *EntityPanel) Render() {
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 150), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, row := range ep.rows() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(row.label, ep.selected == row.id, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				ep.selected = row.id
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", row.archetypeID))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.components, ", "))
		}

		imgui.EndTable()
	}

	imgui.Separator()
	ep.renderSelected()
	imgui.End()
}

func (ep *EntityPanel) renderSelected() {
	if !ep.storage.Alive(ep.selected) {
		imgui.Text("No entity selected")
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d (generation %d)", ep.selected.Index(), ep.selected.Generation()))
	if parent, ok := ep.storage.Parent(ep.selected); ok {
		imgui.Text(fmt.Sprintf("Parent: %d", parent.Index()))
	}
	for child := range ep.storage.Children(ep.selected) {
		imgui.BulletText(fmt.Sprintf("Child: %d", child.Index()))
	}

	for _, archetype := range ep.storage.Archetypes() {
		for _, id := range archetype.Iter() {
			if id != ep.selected {
				continue
			}
			for _, typ := range archetype.Types() {
				imgui.Text(typ.Name() + ": " + describe(ep.storage.GetComponent(id, typ)))
			}
			return
		}
	}
}

// describe formats a component pointer as its value.
func describe(component any) string {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "<nil>"
		}
		v = v.Elem()
	}
	return fmt.Sprintf("%+v", v.Interface())
}
