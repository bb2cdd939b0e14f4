package collections

import (
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// RoleValues are the quote roles a user record can carry.
var RoleValues = []string{"Admin", "Business"}

// Setup programmatically creates/ensures the freight_rates collection exists
// and that the users collection carries a role field.
func Setup(app core.App) {
	rates := ensureCollection(app, "freight_rates", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "mode",
			Required:  true,
			Values:    []string{"air", "sea"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "country", Required: true})
		c.Fields.Add(&core.TextField{Name: "origin", Required: true})
		c.Fields.Add(&core.TextField{Name: "destination", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rate", Required: true})
		c.Fields.Add(&core.TextField{Name: "source", Required: false})
		c.Fields.Add(&core.DateField{Name: "loaded_at", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_freight_rates_route", true, "mode, country, origin, destination", "")
	})
	zap.L().Debug("collections: rate snapshot ready", zap.String("id", rates.Id))

	ensureField(app, "users", &core.SelectField{
		Name:      "role",
		Required:  false,
		Values:    RoleValues,
		MaxSelect: 1,
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		zap.L().Debug("collections: already exists, skipping creation", zap.String("collection", name))
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		zap.L().Fatal("collections: failed to create", zap.String("collection", name), zap.Error(err))
	}

	zap.L().Info("collections: created", zap.String("collection", name), zap.String("id", collection.Id))
	return collection
}

// ensureField adds field to an existing collection unless a field with the
// same name is already present.
func ensureField(app core.App, collectionName string, field core.Field) {
	col, err := app.FindCollectionByNameOrId(collectionName)
	if err != nil {
		zap.L().Warn("collections: cannot add field, collection missing",
			zap.String("collection", collectionName),
			zap.String("field", field.GetName()),
			zap.Error(err),
		)
		return
	}
	if col.Fields.GetByName(field.GetName()) != nil {
		return
	}

	col.Fields.Add(field)
	if err := app.Save(col); err != nil {
		zap.L().Fatal("collections: failed to add field",
			zap.String("collection", collectionName),
			zap.String("field", field.GetName()),
			zap.Error(err),
		)
	}
	zap.L().Info("collections: added field", zap.String("collection", collectionName), zap.String("field", field.GetName()))
}
