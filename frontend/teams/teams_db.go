package teams

import (
	"context"

	"github.com/uptrace/bun"

	"teaminsight/infrastructure/sqlite"
	"teaminsight/models"
)

// ListTeams returns all teams ordered by name.
func ListTeams(ctx context.Context, db *sqlite.DB) ([]models.Team, error) {
	return sqlite.Read(ctx, db, func(ctx context.Context, tx bun.Tx) ([]models.Team, error) {
		teams := make([]models.Team, 0)
		err := tx.NewSelect().
			Model(&teams).
			OrderExpr("t.name COLLATE NOCASE ASC").
			OrderExpr("t.id ASC").
			Scan(ctx)
		return teams, err
	})
}
