package i18n

import (
	"fmt"
	"sort"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message identifiers used by dashboard views.
const (
	KeyProjectName      = "site.projectName"
	KeyMember           = "site.member"
	KeySearch           = "site.search"
	KeyLoadMore         = "site.loadMore"
	KeyRefresh          = "site.refresh"
	KeyRetry            = "site.retry"
	KeyPreviousPage     = "site.previousPage"
	KeyNextPage         = "site.nextPage"
	KeyLoading          = "site.loading"
	KeyNetworkError     = "api.networkError"
	KeyInsightTitle     = "insight.title"
	KeyNoUserInProjects = "insight.noUserInProjects"
	KeyMoreProject      = "insight.moreProject"
	KeyLoadUsersFailed  = "insight.loadUsersFailed"
	KeyNoProjects       = "insight.noProjects"
	KeyTotalProjects    = "insight.totalProjects"
	KeyTeams            = "team.list"
	KeyNoTeams          = "team.empty"
)

var (
	English = language.AmericanEnglish
	Chinese = language.SimplifiedChinese
)

// pluralMessage holds the "one" and "other" forms of a count message.
type pluralMessage struct {
	one   string
	other string
}

var messagesEN = map[string]string{
	KeyProjectName:      "Project name",
	KeyMember:           "Members",
	KeySearch:           "Search",
	KeyLoadMore:         "Load more",
	KeyRefresh:          "Refresh",
	KeyRetry:            "Retry",
	KeyPreviousPage:     "Previous",
	KeyNextPage:         "Next",
	KeyLoading:          "Loading…",
	KeyNetworkError:     "Network error, please try again later",
	KeyInsightTitle:     "Project insight",
	KeyNoUserInProjects: "No members in this project",
	KeyLoadUsersFailed:  "Failed to load members",
	KeyNoProjects:       "No projects found",
	KeyTeams:            "Teams",
	KeyNoTeams:          "No teams yet",
}

var messagesZH = map[string]string{
	KeyProjectName:      "项目名称",
	KeyMember:           "成员",
	KeySearch:           "搜索",
	KeyLoadMore:         "加载更多",
	KeyRefresh:          "刷新",
	KeyRetry:            "重试",
	KeyPreviousPage:     "上一页",
	KeyNextPage:         "下一页",
	KeyLoading:          "加载中…",
	KeyNetworkError:     "网络错误，请稍后重试",
	KeyInsightTitle:     "项目分析",
	KeyNoUserInProjects: "此项目暂无成员",
	KeyLoadUsersFailed:  "成员加载失败",
	KeyNoProjects:       "没有找到项目",
	KeyTeams:            "团队",
	KeyNoTeams:          "暂无团队",
}

var pluralsEN = map[string]pluralMessage{
	KeyMoreProject:   {one: "%d more member", other: "%d more members"},
	KeyTotalProjects: {one: "%d project", other: "%d projects"},
}

var pluralsZH = map[string]pluralMessage{
	KeyMoreProject:   {one: "还有 %d 位成员", other: "还有 %d 位成员"},
	KeyTotalProjects: {one: "共 %d 个项目", other: "共 %d 个项目"},
}

// Supported lists locales with a registered catalog; the first is the default.
func Supported() []language.Tag {
	return []language.Tag{English, Chinese}
}

var catalogs = map[language.Tag]struct {
	messages map[string]string
	plurals  map[string]pluralMessage
}{
	English: {messages: messagesEN, plurals: pluralsEN},
	Chinese: {messages: messagesZH, plurals: pluralsZH},
}

func init() {
	if err := register(); err != nil {
		panic(err)
	}
}

// register installs every catalog into the x/text default catalog.
func register() error {
	for tag, c := range catalogs {
		keys := make([]string, 0, len(c.messages))
		for key := range c.messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := message.SetString(tag, key, c.messages[key]); err != nil {
				return fmt.Errorf("register %s %s: %w", tag, key, err)
			}
		}
		for key, p := range c.plurals {
			msg := plural.Selectf(1, "%d", "=1", p.one, "other", p.other)
			if err := message.Set(tag, key, msg); err != nil {
				return fmt.Errorf("register %s %s: %w", tag, key, err)
			}
		}
	}
	return nil
}

// Keys returns the sorted message identifiers defined for tag.
func Keys(tag language.Tag) []string {
	c, ok := catalogs[tag]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(c.messages)+len(c.plurals))
	for key := range c.messages {
		keys = append(keys, key)
	}
	for key := range c.plurals {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
