package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/boringgame/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

const (
	sortByID = iota
	sortByArchetype
	sortByComponents
)

// EntityBrowserWindow lists every entity with components, with a text filter
// and paging. Clicking a row changes the Selection.
type EntityBrowserWindow struct {
	entities      []EntityInfo
	filterText    string
	sortColumn    int
	sortAscending bool
	perPage       int
	page          int
}

func NewEntityBrowserWindow(perPage int) EntityBrowserWindow {
	return EntityBrowserWindow{
		sortColumn:    sortByID,
		sortAscending: true,
		perPage:       max(perPage, 1),
	}
}

// Refresh rebuilds the entity list from storage.
func (eb *EntityBrowserWindow) Refresh(storage *ecs.Storage) {
	eb.entities = eb.entities[:0]

	for archetype := range storage.Archetypes() {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}

		for id := range archetype.Entities() {
			eb.entities = append(eb.entities, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: names,
			})
		}
	}

	eb.sortEntities()
}

func (eb *EntityBrowserWindow) sortEntities() {
	sort.SliceStable(eb.entities, func(i, j int) bool {
		a, b := eb.entities[i], eb.entities[j]
		var less bool

		switch eb.sortColumn {
		case sortByArchetype:
			less = a.ArchetypeID < b.ArchetypeID
		case sortByComponents:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		default:
			less = a.ID < b.ID
		}

		if !eb.sortAscending {
			return !less
		}
		return less
	})
}

// Filtered returns the entities whose id, archetype or component names
// contain the filter text.
func (eb *EntityBrowserWindow) Filtered() []EntityInfo {
	if eb.filterText == "" {
		return eb.entities
	}

	filter := strings.ToLower(eb.filterText)
	filtered := make([]EntityInfo, 0, len(eb.entities))
	for _, entity := range eb.entities {
		if strings.Contains(fmt.Sprintf("%d", entity.ID), filter) ||
			strings.Contains(fmt.Sprintf("0x%x", entity.ArchetypeID), filter) ||
			strings.Contains(strings.ToLower(strings.Join(entity.ComponentTypes, " ")), filter) {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}

// SetFilter sets the text filter and returns to the first page.
func (eb *EntityBrowserWindow) SetFilter(text string) {
	eb.filterText = text
	eb.page = 0
}

// Page returns the entities shown on the current page.
func (eb *EntityBrowserWindow) Page() []EntityInfo {
	filtered := eb.Filtered()
	start := min(eb.page*eb.perPage, len(filtered))
	end := min(start+eb.perPage, len(filtered))
	return filtered[start:end]
}

func (eb *EntityBrowserWindow) pageCount() int {
	return max((len(eb.Filtered())+eb.perPage-1)/eb.perPage, 1)
}

func (eb *EntityBrowserWindow) Render(storage *ecs.Storage, selection *Selection) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh(storage)

	filter := eb.filterText
	if imgui.InputTextWithHint("##search", "Search...", &filter, imgui.InputTextFlagsNone, nil) {
		eb.SetFilter(filter)
	}
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.SetFilter("")
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, entity := range eb.Page() {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			selected := selection.Entity == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				selection.Entity = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeID))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}

		imgui.EndTable()
	}

	pages := eb.pageCount()
	eb.page = min(eb.page, pages-1)
	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, pages, len(eb.Filtered())))
	imgui.SameLine()
	if imgui.Button("Prev") && eb.page > 0 {
		eb.page--
	}
	imgui.SameLine()
	if imgui.Button("Next") && eb.page < pages-1 {
		eb.page++
	}

	imgui.End()
}
