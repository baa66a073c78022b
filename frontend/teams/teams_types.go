package teams

import (
	"teaminsight/frontend/shared/nav"
	"teaminsight/infrastructure/i18n"
)

type TeamRow struct {
	ID   int64
	Name string
	URL  string
}

type PageData struct {
	Rows []TeamRow
	Nav  nav.TopNavData
	Loc  *i18n.Localizer
}
