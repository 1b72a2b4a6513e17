package models

import "sort"

// Category is the fixed clothing taxonomy a product belongs to.
type Category string

const (
	MensShirts      Category = "mens_shirts"
	MensPants       Category = "mens_pants"
	MensJackets     Category = "mens_jackets"
	MensSuits       Category = "mens_suits"
	MensTShirts     Category = "mens_tshirts"
	MensShoes       Category = "mens_shoes"
	MensActivewear  Category = "mens_activewear"
	MensAccessories Category = "mens_accessories"

	WomensDresses     Category = "womens_dresses"
	WomensTops        Category = "womens_tops"
	WomensPants       Category = "womens_pants"
	WomensSkirts      Category = "womens_skirts"
	WomensJackets     Category = "womens_jackets"
	WomensShoes       Category = "womens_shoes"
	WomensActivewear  Category = "womens_activewear"
	WomensAccessories Category = "womens_accessories"
	WomensLingerie    Category = "womens_lingerie"

	CasualWear Category = "casual_wear"
	FormalWear Category = "formal_wear"
	Sportswear Category = "sportswear"
)

// CategoryGroup partitions categories into storefront departments.
type CategoryGroup string

const (
	GroupMen    CategoryGroup = "men"
	GroupWomen  CategoryGroup = "women"
	GroupUnisex CategoryGroup = "unisex"
)

var categoryGroups = map[Category]CategoryGroup{
	MensShirts:      GroupMen,
	MensPants:       GroupMen,
	MensJackets:     GroupMen,
	MensSuits:       GroupMen,
	MensTShirts:     GroupMen,
	MensShoes:       GroupMen,
	MensActivewear:  GroupMen,
	MensAccessories: GroupMen,

	WomensDresses:     GroupWomen,
	WomensTops:        GroupWomen,
	WomensPants:       GroupWomen,
	WomensSkirts:      GroupWomen,
	WomensJackets:     GroupWomen,
	WomensShoes:       GroupWomen,
	WomensActivewear:  GroupWomen,
	WomensAccessories: GroupWomen,
	WomensLingerie:    GroupWomen,

	CasualWear: GroupUnisex,
	FormalWear: GroupUnisex,
	Sportswear: GroupUnisex,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryGroups[c]
	return ok
}

// Group returns the department c belongs to.
func (c Category) Group() CategoryGroup {
	return categoryGroups[c]
}

// Valid reports whether g is a known group.
func (g CategoryGroup) Valid() bool {
	switch g {
	case GroupMen, GroupWomen, GroupUnisex:
		return true
	}
	return false
}

// Contains reports whether c belongs to g.
func (g CategoryGroup) Contains(c Category) bool {
	return categoryGroups[c] == g
}

// Categories lists the members of g in a stable order.
func (g CategoryGroup) Categories() []Category {
	var out []Category
	for c, group := range categoryGroups {
		if group == g {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllCategories lists every category in a stable order.
func AllCategories() []Category {
	out := make([]Category, 0, len(categoryGroups))
	for c := range categoryGroups {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Size is a garment size.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// Valid reports whether s is a known size.
func (s Size) Valid() bool {
	switch s {
	case SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL:
		return true
	}
	return false
}
