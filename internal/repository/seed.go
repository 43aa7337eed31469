package repository

import (
	"context"
	"fmt"

	"github.com/guttosm/parcel-service/internal/domain/model"
	"github.com/rs/zerolog/log"
)

func intPtr(v int) *int { return &v }

// DefaultProducts is the catalog written on first start.
func DefaultProducts() []model.Product {
	return []model.Product{
		{ID: 1, Category: "toys", Name: "Plush Bear", NameJa: "くまのぬいぐるみ", LengthCm: 20, WidthCm: 15, HeightCm: 10, WeightG: 150, ImageIcon: "bear"},
		{ID: 2, Category: "toys", Name: "Mini Plush", NameJa: "ちびぐるみ", LengthCm: 8, WidthCm: 6, HeightCm: 5, WeightG: 30, ImageIcon: "plush"},
		{ID: 3, Category: "toys", Name: "Figure Box", NameJa: "フィギュア", LengthCm: 30, WidthCm: 20, HeightCm: 10, WeightG: 800, ImageIcon: "figure"},
		{ID: 4, Category: "fashion", Name: "T-Shirt", NameJa: "Tシャツ", LengthCm: 30, WidthCm: 20, HeightCm: 5, WeightG: 200, ImageIcon: "shirt"},
		{ID: 5, Category: "fashion", Name: "Hoodie", NameJa: "パーカー", LengthCm: 35, WidthCm: 25, HeightCm: 8, WeightG: 600, ImageIcon: "hoodie"},
		{ID: 6, Category: "hobby", Name: "Card Case", NameJa: "カードケース", LengthCm: 10, WidthCm: 7, HeightCm: 2, WeightG: 25, ImageIcon: "card"},
		{ID: 7, Category: "hobby", Name: "Acrylic Stand", NameJa: "アクリルスタンド", LengthCm: 12, WidthCm: 8, HeightCm: 1, WeightG: 40, ImageIcon: "stand"},
		{ID: 8, Category: "hobby", Name: "Can Badge", NameJa: "缶バッジ", LengthCm: 5.7, WidthCm: 5.7, HeightCm: 1, WeightG: 15, ImageIcon: "badge"},
		{ID: 9, Category: "books", Name: "Paperback", NameJa: "文庫本", LengthCm: 15, WidthCm: 10.5, HeightCm: 1.5, WeightG: 180, ImageIcon: "book"},
		{ID: 10, Category: "books", Name: "Art Book", NameJa: "画集", LengthCm: 30, WidthCm: 22, HeightCm: 2, WeightG: 900, ImageIcon: "book"},
	}
}

// DefaultCarriers is the carrier catalog written on first start. The last
// two only limit the sum of the three sides.
func DefaultCarriers() []model.Carrier {
	return []model.Carrier{
		{ID: 1, CompanyName: "Yamato", ServiceName: "Nekoposu", MaxLengthCm: 31.2, MaxWidthCm: 22.8, MaxHeightCm: 3, MaxWeightG: intPtr(1000)},
		{ID: 2, CompanyName: "Japan Post", ServiceName: "Yu-Packet Post", MaxLengthCm: 32.7, MaxWidthCm: 22.8, MaxHeightCm: 3, MaxWeightG: intPtr(2000)},
		{ID: 3, CompanyName: "Yamato", ServiceName: "Compact", MaxLengthCm: 25, MaxWidthCm: 20, MaxHeightCm: 5},
		{ID: 4, CompanyName: "Japan Post", ServiceName: "Letter Pack Plus", MaxLengthCm: 34, MaxWidthCm: 24.8, MaxHeightCm: 7, MaxWeightG: intPtr(4000)},
		{ID: 5, CompanyName: "Japan Post", ServiceName: "Yu-Pack 60", MaxLengthCm: 60, MaxWidthCm: 60, MaxHeightCm: 60, MaxWeightG: intPtr(25000), SizeSumLimit: intPtr(60)},
		{ID: 6, CompanyName: "Yamato", ServiceName: "Takkyubin 80", MaxLengthCm: 80, MaxWidthCm: 80, MaxHeightCm: 80, MaxWeightG: intPtr(5000), SizeSumLimit: intPtr(80)},
	}
}

// Seed writes the default products and carriers into empty collections.
// Collections that already hold documents are left alone.
func Seed(ctx context.Context, products ProductRepositoryInterface, carriers CarrierRepositoryInterface) error {
	n, err := products.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if n == 0 {
		if err := products.Upsert(ctx, DefaultProducts()); err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		log.Info().Int("count", len(DefaultProducts())).Msg("seeded product catalog")
	}

	n, err = carriers.Count(ctx)
	if err != nil {
		return fmt.Errorf("count carriers: %w", err)
	}
	if n == 0 {
		if err := carriers.Upsert(ctx, DefaultCarriers()); err != nil {
			return fmt.Errorf("seed carriers: %w", err)
		}
		log.Info().Int("count", len(DefaultCarriers())).Msg("seeded carrier catalog")
	}
	return nil
}
