package model

// Recipe is a single recipe owned by one user.
//
// The owner's email is not stored on the struct — it is the partition key
// every repository operation takes explicitly, so a recipe can never be
// addressed without naming its owner.
//
// ID is a unix-millisecond timestamp assigned at creation, unique and
// monotonically increasing within the owner's partition. Listing in id order
// is therefore insertion order.
type Recipe struct {
	ID           int64  `json:"id"                 db:"id"`
	Name         string `json:"name"               db:"name"`
	Ingredients  string `json:"ingredients"        db:"ingredients"`
	Instructions string `json:"instructions"       db:"instructions"`
	ImageURL     string `json:"imageUrl,omitempty" db:"image_url"`
	Favorite     bool   `json:"favorite"           db:"favorite"`
}

// RecipeUpdate carries a partial update. Nil fields are left untouched,
// giving PUT /recipes/{id} its shallow-merge semantics.
type RecipeUpdate struct {
	Name         *string `json:"name"`
	Ingredients  *string `json:"ingredients"`
	Instructions *string `json:"instructions"`
	ImageURL     *string `json:"imageUrl"`
	Favorite     *bool   `json:"favorite"`
}

// Apply merges the update into r, field by field.
func (u RecipeUpdate) Apply(r *Recipe) {
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.Ingredients != nil {
		r.Ingredients = *u.Ingredients
	}
	if u.Instructions != nil {
		r.Instructions = *u.Instructions
	}
	if u.ImageURL != nil {
		r.ImageURL = *u.ImageURL
	}
	if u.Favorite != nil {
		r.Favorite = *u.Favorite
	}
}
