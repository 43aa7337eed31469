// Package dto defines the wire types of the HTTP API and their validation.
package dto

import (
	"errors"
	"fmt"

	"github.com/guttosm/parcel-service/internal/packing"
)

// ItemRequest is one manually entered item, in centimeters and grams.
//
// @Description Item with catalog dimensions; quantity expands to that many units
type ItemRequest struct {
	Name     string   `json:"name" binding:"required" example:"Plush Bear"`
	Names    []string `json:"names,omitempty"`
	Category string   `json:"category,omitempty" example:"toys"`
	LengthCm float64  `json:"length_cm" binding:"gte=0" example:"20"`
	WidthCm  float64  `json:"width_cm" binding:"gte=0" example:"15"`
	HeightCm float64  `json:"height_cm" binding:"gte=0" example:"10"`
	WeightG  int      `json:"weight_g" binding:"gte=0" example:"150"`
	// Quantity defaults to 1 when omitted.
	Quantity int `json:"quantity,omitempty" binding:"gte=0,lte=10000" example:"2"`
} // @name ItemRequest

// ContainerRequest is a container envelope in centimeters.
type ContainerRequest struct {
	Name     string  `json:"name,omitempty" example:"Nekoposu"`
	LengthCm float64 `json:"length_cm" example:"31.2"`
	WidthCm  float64 `json:"width_cm" example:"22.8"`
	HeightCm float64 `json:"height_cm" example:"3"`
} // @name ContainerRequest

// PackRequest is the body of POST /api/pack.
//
// @Description Items to pack; containers optionally replace the server container hypotheses
type PackRequest struct {
	Items      []ItemRequest      `json:"items" binding:"required,min=1,dive"`
	Containers []ContainerRequest `json:"containers,omitempty"`
} // @name PackRequest

// FitRequest is the body of POST /api/pack/fit.
type FitRequest struct {
	Items     []ItemRequest    `json:"items" binding:"required,min=1,dive"`
	Container ContainerRequest `json:"container"`
} // @name FitRequest

// CartLine references a catalog product.
type CartLine struct {
	ProductID int `json:"product_id" binding:"required" example:"1"`
	Quantity  int `json:"quantity" binding:"gte=0,lte=10000" example:"2"`
} // @name CartLine

// CartRequest is the body of POST /api/pack/cart.
type CartRequest struct {
	Items []CartLine `json:"items" binding:"required,min=1,dive"`
} // @name CartRequest

// MaxQuantity caps the quantity of a single line. The configured item
// limit usually bites first.
const MaxQuantity = 10000

// ErrTooManyItems is returned when a request expands to more units than
// the configured limit.
var ErrTooManyItems = errors.New("too many items")

// TooManyItemsError carries the request size and the configured limit.
type TooManyItemsError struct {
	Count int
	Limit int
}

func (e *TooManyItemsError) Error() string {
	return fmt.Sprintf("%s: %d items, limit is %d", ErrTooManyItems, e.Count, e.Limit)
}

// Is matches ErrTooManyItems.
func (e *TooManyItemsError) Is(target error) bool {
	return target == ErrTooManyItems
}

// CheckUnits rejects counts above limit. A limit of zero disables the check.
func CheckUnits(count, limit int) error {
	if limit > 0 && count > limit {
		return &TooManyItemsError{Count: count, Limit: limit}
	}
	return nil
}

// ValidationError is a field validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns "field: message".
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrNoItems is returned when a request carries no items.
	ErrNoItems = &ValidationError{Field: "items", Message: "at least one item is required"}
	// ErrNoCartLines is returned when every cart line has a zero quantity.
	ErrNoCartLines = &ValidationError{Field: "items", Message: "at least one cart line with a positive quantity is required"}
	// ErrInvalidContainer is returned for a container without three positive sides.
	ErrInvalidContainer = &ValidationError{Field: "container", Message: "length, width and height must be positive"}
)

func validateItems(items []ItemRequest) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for i, it := range items {
		field := fmt.Sprintf("items[%d]", i)
		if it.Name == "" {
			return &ValidationError{Field: field + ".name", Message: "is required"}
		}
		if it.LengthCm < 0 || it.WidthCm < 0 || it.HeightCm < 0 {
			return &ValidationError{Field: field, Message: "dimensions must not be negative"}
		}
		if it.WeightG < 0 || it.Quantity < 0 {
			return &ValidationError{Field: field, Message: "weight and quantity must not be negative"}
		}
		if it.Quantity > MaxQuantity {
			return &ValidationError{Field: field + ".quantity", Message: fmt.Sprintf("must not exceed %d", MaxQuantity)}
		}
	}
	return nil
}

// units counts the items a list expands to, without expanding it.
func units(items []ItemRequest) int {
	n := 0
	for _, it := range items {
		n += max(it.Quantity, 1)
	}
	return n
}

// Validate checks the container has three positive sides.
func (r ContainerRequest) Validate() error {
	if r.LengthCm <= 0 || r.WidthCm <= 0 || r.HeightCm <= 0 {
		return ErrInvalidContainer
	}
	return nil
}

// Container converts the envelope to internal units.
func (r ContainerRequest) Container() packing.Container {
	name := r.Name
	if name == "" {
		name = "custom"
	}
	return packing.Container{
		Name:   name,
		Length: packing.ToMM(r.LengthCm),
		Width:  packing.ToMM(r.WidthCm),
		Height: packing.ToMM(r.HeightCm),
	}
}

// Validate checks items and any container overrides.
func (r *PackRequest) Validate() error {
	if err := validateItems(r.Items); err != nil {
		return err
	}
	for _, c := range r.Containers {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Units returns the number of items the request expands to.
func (r *PackRequest) Units() int {
	return units(r.Items)
}

// PackingItems expands quantities into one item per unit.
func (r *PackRequest) PackingItems() []packing.Item {
	return expand(r.Items)
}

// PackingContainers converts the container overrides, nil when none were sent.
func (r *PackRequest) PackingContainers() []packing.Container {
	if len(r.Containers) == 0 {
		return nil
	}
	out := make([]packing.Container, len(r.Containers))
	for i, c := range r.Containers {
		out[i] = c.Container()
	}
	return out
}

// Validate checks items and the target container.
func (r *FitRequest) Validate() error {
	if err := validateItems(r.Items); err != nil {
		return err
	}
	return r.Container.Validate()
}

// Units returns the number of items the request expands to.
func (r *FitRequest) Units() int {
	return units(r.Items)
}

// PackingItems expands quantities into one item per unit.
func (r *FitRequest) PackingItems() []packing.Item {
	return expand(r.Items)
}

// Validate requires at least one line with a positive quantity.
func (r *CartRequest) Validate() error {
	for _, l := range r.Items {
		if l.Quantity < 0 {
			return &ValidationError{Field: "items.quantity", Message: "must not be negative"}
		}
		if l.Quantity > MaxQuantity {
			return &ValidationError{Field: "items.quantity", Message: fmt.Sprintf("must not exceed %d", MaxQuantity)}
		}
	}
	for _, l := range r.Items {
		if l.Quantity > 0 {
			return nil
		}
	}
	return ErrNoCartLines
}

// Units returns the number of items the cart expands to.
func (r *CartRequest) Units() int {
	return CartUnits(r.Items)
}

// CartUnits sums the positive quantities of lines.
func CartUnits(lines []CartLine) int {
	n := 0
	for _, l := range lines {
		n += max(l.Quantity, 0)
	}
	return n
}

func expand(items []ItemRequest) []packing.Item {
	out := make([]packing.Item, 0, units(items))
	for _, it := range items {
		n := max(it.Quantity, 1)
		item := packing.Item{
			Name:     it.Name,
			Names:    it.Names,
			Category: it.Category,
			LengthCm: it.LengthCm,
			WidthCm:  it.WidthCm,
			HeightCm: it.HeightCm,
			WeightG:  it.WeightG,
		}
		for i := 0; i < n; i++ {
			out = append(out, item)
		}
	}
	return out
}
