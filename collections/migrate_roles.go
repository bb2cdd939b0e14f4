package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// MigrateUsersWithoutRole assigns the Business role to every user record that
// has none. Safe to call on every startup -- returns early if nothing to
// migrate.
func MigrateUsersWithoutRole(app core.App) (int, error) {
	usersCol, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		return 0, fmt.Errorf("migrate: could not find users collection: %w", err)
	}
	if usersCol.Fields.GetByName("role") == nil {
		return 0, fmt.Errorf("migrate: users collection has no role field")
	}

	users, err := app.FindRecordsByFilter(usersCol, "role = ''", "", 0, 0, nil)
	if err != nil {
		return 0, fmt.Errorf("migrate: could not query users without role: %w", err)
	}
	if len(users) == 0 {
		return 0, nil
	}

	zap.L().Info("migrate: assigning Business role", zap.Int("users", len(users)))

	migrated := 0
	for _, u := range users {
		u.Set("role", "Business")
		if err := app.Save(u); err != nil {
			zap.L().Warn("migrate: failed to set role", zap.String("user", u.Id), zap.Error(err))
			continue
		}
		migrated++
	}
	return migrated, nil
}
