package services

import (
	"fmt"
	"time"

	"github.com/Mathdino/cardapio-backend/models"
)

// ProductLookup resolves the products referenced by combo "products"
// groups, keyed by product id.
type ProductLookup map[string]*models.Product

// ResolveModifiers computes the per-unit price delta contributed by the
// customer's selections on one product, together with human-readable
// descriptions for the order summary. It validates selection cardinality
// against the product's configuration and returns a plain error on any
// violation; callers translate that into a validation failure.
func ResolveModifiers(product *models.Product, sel *models.ItemSelections, refs ProductLookup, now time.Time) (float64, []string, error) {
	var delta float64
	var descriptions []string

	flavorDelta, flavorDesc, err := resolveFlavors(product, sel)
	if err != nil {
		return 0, nil, err
	}
	delta += flavorDelta
	descriptions = append(descriptions, flavorDesc...)

	comboDelta, comboDesc, err := resolveCombo(product, sel, refs, now)
	if err != nil {
		return 0, nil, err
	}
	delta += comboDelta
	descriptions = append(descriptions, comboDesc...)

	complementDelta, complementDesc, err := resolveComplements(product, sel)
	if err != nil {
		return 0, nil, err
	}
	delta += complementDelta
	descriptions = append(descriptions, complementDesc...)

	// Ingredient removal is informational only, never priced.
	for _, name := range sel.RemovedIngredients {
		descriptions = append(descriptions, "No "+name)
	}

	return delta, descriptions, nil
}

// resolveFlavors sums the price deltas of the chosen flavor options. For a
// combo product with no groups, the legacy flat options list is resolved
// here with the same rules.
func resolveFlavors(product *models.Product, sel *models.ItemSelections) (float64, []string, error) {
	options, min, max := flavorOptions(product)
	if len(sel.FlavorIDs) == 0 {
		if min > 0 {
			return 0, nil, fmt.Errorf("product %q requires at least %d flavor selection(s)", product.Name, min)
		}
		return 0, nil, nil
	}
	if options == nil {
		return 0, nil, fmt.Errorf("product %q does not accept flavor selections", product.Name)
	}
	if len(sel.FlavorIDs) < min {
		return 0, nil, fmt.Errorf("product %q requires at least %d flavor selection(s)", product.Name, min)
	}
	if max > 0 && len(sel.FlavorIDs) > max {
		return 0, nil, fmt.Errorf("product %q accepts at most %d flavor selection(s)", product.Name, max)
	}

	byID := make(map[string]models.FlavorOption, len(options))
	for _, opt := range options {
		byID[opt.ID] = opt
	}

	var delta float64
	var descriptions []string
	for _, id := range sel.FlavorIDs {
		opt, ok := byID[id]
		if !ok {
			return 0, nil, fmt.Errorf("unknown flavor %q on product %q", id, product.Name)
		}
		delta += opt.Price
		descriptions = append(descriptions, "Flavor: "+opt.Name)
	}
	return delta, descriptions, nil
}

// flavorOptions returns the option list that flavor selections resolve
// against. Combo groups take precedence over the legacy flat list.
func flavorOptions(product *models.Product) ([]models.FlavorOption, int, int) {
	if product.Flavors != nil {
		return product.Flavors.Options, product.Flavors.Min, product.Flavors.Max
	}
	if product.Combo != nil && len(product.Combo.Groups) == 0 && len(product.Combo.Options) > 0 {
		return product.Combo.Options, 0, 1
	}
	return nil, 0, 0
}

// resolveCombo prices the group selections of a combo product. A
// "products" group resolves the referenced product's promotional price if
// active, else its base price, unless the group defines a per-product
// override, which always wins.
func resolveCombo(product *models.Product, sel *models.ItemSelections, refs ProductLookup, now time.Time) (float64, []string, error) {
	if product.Combo == nil || len(product.Combo.Groups) == 0 {
		if sel.HasCombo() {
			return 0, nil, fmt.Errorf("product %q does not accept combo selections", product.Name)
		}
		return 0, nil, nil
	}

	var delta float64
	var descriptions []string
	var totalPicked int

	for _, group := range product.Combo.Groups {
		picks := sel.Combo[group.ID]
		var picked int
		for _, qty := range picks {
			picked += qty
		}
		if picked < group.Min {
			return 0, nil, fmt.Errorf("group %q requires at least %d selection(s)", group.Name, group.Min)
		}
		if group.Max > 0 && picked > group.Max {
			return 0, nil, fmt.Errorf("group %q accepts at most %d selection(s)", group.Name, group.Max)
		}
		totalPicked += picked

		for _, item := range group.Items {
			qty := picks[item.ID]
			if qty <= 0 {
				continue
			}
			price, name, err := comboItemPrice(group, item, refs, now)
			if err != nil {
				return 0, nil, err
			}
			delta += price * float64(qty)
			descriptions = append(descriptions, fmt.Sprintf("%dx %s", qty, name))
		}

		// Reject picks that reference items outside the group.
		for itemID, qty := range picks {
			if qty <= 0 {
				continue
			}
			if !groupHasItem(group, itemID) {
				return 0, nil, fmt.Errorf("unknown item %q in group %q", itemID, group.Name)
			}
		}
	}

	for groupID := range sel.Combo {
		if !comboHasGroup(product.Combo, groupID) {
			return 0, nil, fmt.Errorf("unknown combo group %q on product %q", groupID, product.Name)
		}
	}

	if product.Combo.MaxItems > 0 && totalPicked > product.Combo.MaxItems {
		return 0, nil, fmt.Errorf("combo %q accepts at most %d item(s)", product.Name, product.Combo.MaxItems)
	}

	return delta, descriptions, nil
}

func comboItemPrice(group models.ComboGroup, item models.ComboGroupItem, refs ProductLookup, now time.Time) (float64, string, error) {
	if group.Type == models.ComboGroupCustom {
		return item.Price, item.Name, nil
	}

	// "products" group: the override always wins.
	if item.PriceOverride != nil {
		name := item.Name
		if ref, ok := refs[item.ProductID]; ok && name == "" {
			name = ref.Name
		}
		return *item.PriceOverride, name, nil
	}

	ref, ok := refs[item.ProductID]
	if !ok {
		return 0, "", fmt.Errorf("combo references unknown product %q", item.ProductID)
	}
	if ref.PromoActive(now) {
		return *ref.PromoPrice, ref.Name, nil
	}
	return ref.Price, ref.Name, nil
}

func groupHasItem(group models.ComboGroup, itemID string) bool {
	for _, item := range group.Items {
		if item.ID == itemID {
			return true
		}
	}
	return false
}

func comboHasGroup(combo *models.ComboConfig, groupID string) bool {
	for _, group := range combo.Groups {
		if group.ID == groupID {
			return true
		}
	}
	return false
}

// resolveComplements sums item.price x quantity across all selected
// complement items.
func resolveComplements(product *models.Product, sel *models.ItemSelections) (float64, []string, error) {
	if len(product.Complements) == 0 {
		if sel.HasComplements() {
			return 0, nil, fmt.Errorf("product %q does not accept complements", product.Name)
		}
		return 0, nil, nil
	}

	var delta float64
	var descriptions []string

	for _, group := range product.Complements {
		picks := sel.Complements[group.ID]
		var picked int
		for _, qty := range picks {
			picked += qty
		}
		if picked < group.Min {
			return 0, nil, fmt.Errorf("complement group %q requires at least %d selection(s)", group.Name, group.Min)
		}
		if group.Max > 0 && picked > group.Max {
			return 0, nil, fmt.Errorf("complement group %q accepts at most %d selection(s)", group.Name, group.Max)
		}

		for _, item := range group.Items {
			qty := picks[item.ID]
			if qty <= 0 {
				continue
			}
			if !item.Available {
				return 0, nil, fmt.Errorf("complement %q is not available", item.Name)
			}
			delta += item.Price * float64(qty)
			descriptions = append(descriptions, fmt.Sprintf("%dx %s", qty, item.Name))
		}

		for itemID, qty := range picks {
			if qty <= 0 {
				continue
			}
			if !complementGroupHasItem(group, itemID) {
				return 0, nil, fmt.Errorf("unknown complement %q in group %q", itemID, group.Name)
			}
		}
	}

	for groupID := range sel.Complements {
		if !complementsHaveGroup(product.Complements, groupID) {
			return 0, nil, fmt.Errorf("unknown complement group %q on product %q", groupID, product.Name)
		}
	}

	return delta, descriptions, nil
}

func complementGroupHasItem(group models.ComplementGroup, itemID string) bool {
	for _, item := range group.Items {
		if item.ID == itemID {
			return true
		}
	}
	return false
}

func complementsHaveGroup(groups models.ComplementGroups, groupID string) bool {
	for _, group := range groups {
		if group.ID == groupID {
			return true
		}
	}
	return false
}

// BaseUnitPrice is the effective per-unit price before modifier deltas.
// A "flavors" product has a zero implicit base: all of its value comes
// from the selected flavor's delta. A combo's own price field is legacy
// and excluded from promotional pricing; its effective price is group
// driven. The wholesale price replaces the base once the quantity meets
// the threshold.
func BaseUnitPrice(product *models.Product, quantity int, now time.Time) float64 {
	if product.Type == models.ProductTypeFlavors {
		return 0
	}
	if product.Type == models.ProductTypeWholesale &&
		product.WholesaleMinQuantity > 0 &&
		quantity >= product.WholesaleMinQuantity {
		return product.WholesalePrice
	}
	if product.Type != models.ProductTypeCombo && product.PromoActive(now) {
		return *product.PromoPrice
	}
	if product.Type == models.ProductTypeCombo && len(comboGroups(product)) > 0 {
		return 0
	}
	return product.Price
}

func comboGroups(product *models.Product) []models.ComboGroup {
	if product.Combo == nil {
		return nil
	}
	return product.Combo.Groups
}

// DisplayPrice is the menu "from" price: for flavor products the minimum
// flavor delta, otherwise the base price at quantity one.
func DisplayPrice(product *models.Product, now time.Time) float64 {
	if product.Type == models.ProductTypeFlavors && product.Flavors != nil && len(product.Flavors.Options) > 0 {
		min := product.Flavors.Options[0].Price
		for _, opt := range product.Flavors.Options[1:] {
			if opt.Price < min {
				min = opt.Price
			}
		}
		return min
	}
	return BaseUnitPrice(product, 1, now)
}
