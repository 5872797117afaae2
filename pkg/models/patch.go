package models

// Patch types describe partial updates. Every field is a pointer: nil means
// "leave the stored value alone", a non-nil pointer replaces the stored value
// even when it points at the zero value. This keeps "not supplied" and
// "supplied as zero/empty" distinguishable, so a price can be updated to 0 and
// a description can be cleared. A patch with no fields set is a no-op, as is
// any patch applied to an ID that matches no record.

// CategoryPatch is a partial update of a Category.
type CategoryPatch struct {
	Name *string `json:"name"`
}

func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil
}

// Apply merges the patch into the category, field by field.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
}

// CountryPatch is a partial update of a Country.
type CountryPatch struct {
	Name *string `json:"name"`
}

func (p CountryPatch) IsEmpty() bool {
	return p.Name == nil
}

// Apply merges the patch into the country, field by field.
func (p CountryPatch) Apply(c *Country) {
	if p.Name != nil {
		c.Name = *p.Name
	}
}

// TravelPatch is a partial update of a Travel. Reviews, when set, replaces
// the whole embedded list; reviews without an ID are assigned one by the
// store at write time.
type TravelPatch struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	CategoryID  *CategoryID `json:"category_id"`
	CountryID   *CountryID  `json:"country_id"`
	Year        *int        `json:"year"`
	Price       *float64    `json:"price"`
	Reviews     *Reviews    `json:"reviews"`
}

func (p TravelPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.CategoryID == nil &&
		p.CountryID == nil && p.Year == nil && p.Price == nil && p.Reviews == nil
}

// Apply merges the patch into the travel, field by field.
func (p TravelPatch) Apply(t *Travel) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.CountryID != nil {
		t.CountryID = *p.CountryID
	}
	if p.Year != nil {
		t.Year = *p.Year
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
	if p.Reviews != nil {
		t.Reviews = p.Reviews.EnsureIDs()
	}
}

// UserPatch is a partial update of a User.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil
}

// Apply merges the patch into the user, field by field.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}

// OrderPatch is a partial update of an Order. OrderDate is set once at
// creation and is not patchable.
type OrderPatch struct {
	UserID   *UserID   `json:"user_id"`
	TravelID *TravelID `json:"travel_id"`
}

func (p OrderPatch) IsEmpty() bool {
	return p.UserID == nil && p.TravelID == nil
}

// Apply merges the patch into the order, field by field.
func (p OrderPatch) Apply(o *Order) {
	if p.UserID != nil {
		o.UserID = *p.UserID
	}
	if p.TravelID != nil {
		o.TravelID = *p.TravelID
	}
}

// EnsureIDs returns a copy of the list in which every review has an ID,
// generating fresh ones where missing. A nil list comes back as an empty,
// non-nil list so that a travel's reviews always serialize as [].
func (r Reviews) EnsureIDs() Reviews {
	out := make(Reviews, len(r))
	for i, rev := range r {
		if rev.ID.IsZero() {
			rev.ID = NewReviewID()
		}
		out[i] = rev
	}
	return out
}
