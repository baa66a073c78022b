package insight

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"teaminsight/infrastructure/i18n"
	"teaminsight/models"
)

func renderComponent(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	return b.String()
}

func TestProjectRowRendersRemainingMembers(t *testing.T) {
	s := loadedState(t, testProject(4, 8, testUsers(1, 3)))
	data := BuildPageData(9, s, i18n.NewLocalizer(i18n.English))

	got := renderComponent(t, ProjectListContent(data))
	if !strings.Contains(got, "5 more members") {
		t.Fatalf("expected load 5 more affordance, got %q", got)
	}
	if !strings.Contains(got, `hx-post="/dashboard/teams/9/insight/projects/4/members"`) {
		t.Fatalf("expected load more form for project 4, got %q", got)
	}
	if !strings.Contains(got, `href="/dashboard/teams/9/project-sets/7/projects/4/setting/invitation"`) {
		t.Fatalf("expected project invitation link, got %q", got)
	}
	if !strings.Contains(got, `<span class="tag">translator</span>`) {
		t.Fatalf("expected role tag, got %q", got)
	}
}

func TestProjectRowWithoutMembers(t *testing.T) {
	s := loadedState(t, testProject(4, 0, nil))
	data := BuildPageData(9, s, i18n.NewLocalizer(i18n.English))

	got := renderComponent(t, ProjectListContent(data))
	if !strings.Contains(got, "No members in this project") {
		t.Fatalf("expected empty roster message, got %q", got)
	}
	if strings.Contains(got, "load-more") {
		t.Fatalf("expected no load more form when all members are shown, got %q", got)
	}
}

func TestProjectRowLoadingAndFailed(t *testing.T) {
	row := BuildRowView(9, 1, Row{
		Project:      models.InsightProjectRef{ID: 4, Name: "p"},
		Users:        testUsers(1, 2),
		Count:        6,
		UsersLoading: true,
	})
	got := renderComponent(t, ProjectRowFragment(row, i18n.NewLocalizer(i18n.English)))
	if !strings.HasPrefix(got, `<tr id="project-row-4">`) {
		t.Fatalf("expected row fragment root, got %q", got)
	}
	if !strings.Contains(got, `disabled aria-busy="true"`) {
		t.Fatalf("expected disabled button while loading, got %q", got)
	}

	row.Loading = false
	row.Failed = true
	got = renderComponent(t, ProjectRowFragment(row, i18n.NewLocalizer(i18n.English)))
	if !strings.Contains(got, "Failed to load members") || !strings.Contains(got, ">Retry</button>") {
		t.Fatalf("expected failure note and retry button, got %q", got)
	}
}

func TestFailureViewHidesTableAndSearch(t *testing.T) {
	s := Reduce(NewState(), FetchStart{})
	s = Reduce(s, FetchFailure{Epoch: s.Epoch, Err: context.DeadlineExceeded})
	data := BuildPageData(9, s, i18n.NewLocalizer(i18n.English))

	got := renderComponent(t, ProjectListContent(data))
	if strings.Contains(got, "search-box") || strings.Contains(got, "<table") || strings.Contains(got, "pagination") {
		t.Fatalf("expected failure view without search, table or pagination, got %q", got)
	}
	if !strings.Contains(got, "Network error, please try again later") {
		t.Fatalf("expected network error panel, got %q", got)
	}
	if !strings.Contains(got, `action="/dashboard/teams/9/insight/projects/refresh"`) || !strings.Contains(got, ">Refresh</button>") {
		t.Fatalf("expected refresh action, got %q", got)
	}
}

func TestProjectListEscapesText(t *testing.T) {
	project := testProject(4, 1, []models.InsightUser{{ID: 1, Name: "<b>x</b>", Role: models.InsightRole{Name: "r"}}})
	project.Project.Name = `"><script>`
	s := loadedState(t, project)
	s = Reduce(s, SetWord{Word: `a"b`})
	data := BuildPageData(9, s, i18n.NewLocalizer(i18n.English))

	got := renderComponent(t, ProjectListContent(data))
	if strings.Contains(got, "<script>") || strings.Contains(got, "<b>x</b>") || strings.Contains(got, `value="a"b"`) {
		t.Fatalf("expected escaped output, got %q", got)
	}
}

func TestProjectListPageRendersChinese(t *testing.T) {
	s := loadedState(t, testProject(4, 8, testUsers(1, 3)))
	data := BuildPageData(9, s, i18n.NewLocalizer(i18n.Chinese))

	got := renderComponent(t, ProjectListPage(data))
	if !strings.Contains(got, `<html lang="zh-Hans">`) && !strings.Contains(got, `<html lang="zh-CN">`) {
		t.Fatalf("expected chinese document language, got %q", got)
	}
	if !strings.Contains(got, "还有 5 位成员") {
		t.Fatalf("expected chinese remaining members, got %q", got)
	}
	if !strings.Contains(got, "htmx.org") {
		t.Fatalf("expected htmx script in layout, got %q", got)
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination("/x", 2, 10, 25)
	if p.TotalPages != 3 || !p.HasPrev || !p.HasNext {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if p.PrevURL != "/x?page=1" || p.NextURL != "/x?page=3" {
		t.Fatalf("unexpected prev/next: %+v", p)
	}
	if len(p.Pages) != 3 || !p.Pages[1].Current || p.Pages[1].URL != "/x?page=2" {
		t.Fatalf("unexpected page links: %+v", p.Pages)
	}

	p = BuildPagination("/x", 9, 10, 25)
	if p.Page != 3 || p.HasNext {
		t.Fatalf("expected clamp to last page, got %+v", p)
	}

	p = BuildPagination("/x", 1, 10, 0)
	if p.TotalPages != 1 || p.HasPrev || p.HasNext || len(p.Pages) != 1 {
		t.Fatalf("expected single empty page, got %+v", p)
	}

	p = BuildPagination("/x", 10, 10, 200)
	if len(p.Pages) != paginationWindow || p.Pages[0].Number != 7 || p.Pages[6].Number != 13 {
		t.Fatalf("expected window around page 10, got %+v", p.Pages)
	}
}
