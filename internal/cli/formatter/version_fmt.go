package formatter

import (
	"strconv"

	"github.com/alexanderramin/shootcal/internal/domain"
)

func FormatVersionList(versions []*domain.Version) string {
	if len(versions) == 0 {
		return Dim("No versions yet.")
	}
	rows := make([][]string, 0, len(versions))
	for _, v := range versions {
		published := Dim("--")
		if v.PublishedAt != nil {
			published = HumanTimestamp(*v.PublishedAt)
		}
		rows = append(rows, []string{
			Bold(v.VersionNumber),
			PublishedPill(v.IsPublished, v.IsLatestPublished),
			HumanTimestamp(v.CreatedAt),
			published,
			OrDash(Truncate(v.Notes, 40)),
			Dim(v.ID),
		})
	}
	return RenderBox("Versions", RenderTable(
		[]string{"VERSION", "STATE", "CREATED", "PUBLISHED", "NOTES", "ID"}, rows))
}

// FormatWorkspace renders the draft state of a project's workspace.
func FormatWorkspace(ws *domain.Workspace) string {
	state := StyleGreen.Render("clean")
	if ws.IsDraft {
		state = StyleYellow.Render("draft")
	}
	return KeyValue(
		[2]string{"state", state},
		[2]string{"base", OrDash(ws.BaseVersionID)},
		[2]string{"modified", HumanTimestamp(ws.LastModified)},
	)
}

// FormatShareList renders access grants with their viewer links.
func FormatShareList(grants []*domain.AccessGrant) string {
	if len(grants) == 0 {
		return Dim("Not shared.")
	}
	rows := make([][]string, 0, len(grants))
	for _, g := range grants {
		last := Dim("never")
		if g.LastAccessed != nil {
			last = HumanTimestamp(*g.LastAccessed)
		}
		rows = append(rows, []string{
			Bold(g.Code),
			"/calendar/" + g.Token,
			strconv.Itoa(g.ViewCount),
			last,
		})
	}
	return RenderTable([]string{"CODE", "LINK", "VIEWS", "LAST VIEWED"}, rows)
}
