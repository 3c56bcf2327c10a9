package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/starshot/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// EntityBrowser lists live entities and remembers the selected one.
type EntityBrowser struct {
	entities      []EntityInfo
	filterText    string
	selected      ecs.EntityId
	pageSize      int
	page          int
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowser(pageSize int) *EntityBrowser {
	return &EntityBrowser{
		pageSize:      pageSize,
		sortAscending: true,
	}
}

// Selected returns the chosen entity, or 0 when nothing is selected.
func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selected
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	// Rebuilt on every render.
	eb.entities = collectEntities(storage, eb.entities[:0])
	sortEntities(eb.entities, eb.sortColumn, eb.sortAscending)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.page = 0
	}

	filtered := filterEntities(eb.entities, eb.filterText)
	pages := max((len(filtered)+eb.pageSize-1)/eb.pageSize, 1)
	eb.page = min(eb.page, pages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		start := eb.page * eb.pageSize
		end := min(start+eb.pageSize, len(filtered))
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), eb.selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeID))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}

		imgui.EndTable()
	}

	if pages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, pages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.page > 0 {
			eb.page--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.page < pages-1 {
			eb.page++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

func collectEntities(storage *ecs.Storage, into []EntityInfo) []EntityInfo {
	for _, archetype := range storage.Archetypes() {
		componentTypes := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			componentTypes[i] = t.String()
		}

		for entityId := range archetype.Iter() {
			into = append(into, EntityInfo{
				ID:             entityId,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: componentTypes,
			})
		}
	}
	return into
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		if !ascending {
			a, b = b, a
		}

		switch column {
		case 1:
			return a.ArchetypeID < b.ArchetypeID
		case 2:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		default:
			return a.ID < b.ID
		}
	})
}

// filterEntities keeps entities whose id, archetype or component names
// contain text, case-insensitively.
func filterEntities(entities []EntityInfo, text string) []EntityInfo {
	if text == "" {
		return entities
	}

	needle := strings.ToLower(text)
	filtered := make([]EntityInfo, 0, len(entities))
	for _, entity := range entities {
		haystack := strings.ToLower(fmt.Sprintf("%d 0x%x %s", entity.ID, entity.ArchetypeID, strings.Join(entity.ComponentTypes, " ")))
		if strings.Contains(haystack, needle) {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}
