package templates

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Template is a schema-flexible document supplied by the caller. Only two fields
// are interpreted here: "_id" (assigned at append/seed time) and "templateName"
// (the lookup key). Everything else is preserved as given.
type Template map[string]interface{}

// Name returns the templateName field, or "" when absent or not a string.
func (t Template) Name() string {
	s, _ := t["templateName"].(string)
	return s
}

// clone returns a shallow copy with a freshly assigned id.
func (t Template) clone() Template {
	c := make(Template, len(t)+1)
	for k, v := range t {
		c[k] = v
	}
	c["_id"] = primitive.NewObjectID()
	return c
}

// TemplateSet groups the templates of one user into a single document.
// At most one set exists per userId; the Mongo repository enforces this with a
// unique index.
type TemplateSet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    int64              `bson:"userId" json:"userId"`
	Templates []Template         `bson:"templates" json:"templates"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
