// Package model defines the core domain entities for the parcel service.
package model

import (
	"math"
	"strings"

	"github.com/guttosm/parcel-service/internal/packing"
)

// Product is a catalog entry whose catalog dimensions feed the packing engine.
//
// @Description Catalog product with its unpacked dimensions
type Product struct {
	ID        int     `bson:"_id" json:"id" example:"1"`
	Category  string  `bson:"category" json:"category" example:"toys"`
	Name      string  `bson:"name" json:"name" example:"Plush Bear"`
	NameJa    string  `bson:"name_ja,omitempty" json:"name_ja,omitempty" example:"くまのぬいぐるみ"`
	LengthCm  float64 `bson:"length_cm" json:"length_cm" example:"20"`
	WidthCm   float64 `bson:"width_cm" json:"width_cm" example:"15"`
	HeightCm  float64 `bson:"height_cm" json:"height_cm" example:"10"`
	WeightG   int     `bson:"weight_g" json:"weight_g" example:"150"`
	ImageIcon string  `bson:"image_icon,omitempty" json:"image_icon,omitempty"`
}

// Item converts the product into a packing item. The Japanese name is
// carried as an alternate name so localized shrink keywords still match.
func (p Product) Item() packing.Item {
	it := packing.Item{
		Name:     p.Name,
		Category: p.Category,
		LengthCm: p.LengthCm,
		WidthCm:  p.WidthCm,
		HeightCm: p.HeightCm,
		WeightG:  p.WeightG,
	}
	if p.NameJa != "" {
		it.Names = []string{p.NameJa}
	}
	return it
}

// Carrier is a shipping service whose size limits become a container
// hypothesis.
//
// @Description Shipping carrier size and weight limits
type Carrier struct {
	ID           int     `bson:"_id" json:"id" example:"1"`
	CompanyName  string  `bson:"company_name" json:"company_name" example:"Yamato"`
	ServiceName  string  `bson:"service_name" json:"service_name" example:"Nekoposu"`
	MaxLengthCm  float64 `bson:"max_length" json:"max_length_cm" example:"31.2"`
	MaxWidthCm   float64 `bson:"max_width" json:"max_width_cm" example:"22.8"`
	MaxHeightCm  float64 `bson:"max_height" json:"max_height_cm" example:"3"`
	MaxWeightG   *int    `bson:"max_weight_g,omitempty" json:"max_weight_g,omitempty" example:"1000"`
	SizeSumLimit *int    `bson:"size_sum_limit,omitempty" json:"size_sum_limit,omitempty" example:"60"`
}

// FullName joins company and service names.
func (c Carrier) FullName() string {
	return strings.TrimSpace(c.CompanyName + " " + c.ServiceName)
}

// SizeSumOnly reports whether the carrier only limits the sum of the three
// sides. Such carriers store the sum in every side limit and describe no
// real box.
func (c Carrier) SizeSumOnly() bool {
	if c.SizeSumLimit == nil {
		return false
	}
	limit := float64(*c.SizeSumLimit)
	const eps = 1e-4
	return math.Abs(c.MaxLengthCm-limit) < eps &&
		math.Abs(c.MaxWidthCm-limit) < eps &&
		math.Abs(c.MaxHeightCm-limit) < eps
}

// Container returns the carrier as a container hypothesis. ok is false for
// size-sum-only carriers and carriers without three positive limits.
func (c Carrier) Container() (packing.Container, bool) {
	if c.MaxLengthCm <= 0 || c.MaxWidthCm <= 0 || c.MaxHeightCm <= 0 || c.SizeSumOnly() {
		return packing.Container{}, false
	}
	return packing.Container{
		Name:   c.FullName(),
		Length: packing.ToMM(c.MaxLengthCm),
		Width:  packing.ToMM(c.MaxWidthCm),
		Height: packing.ToMM(c.MaxHeightCm),
	}, true
}
