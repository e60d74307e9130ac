package repository

import "github.com/pixelpour/storefront/internal/catalog/domain"

// SeedProducts returns the PixelPour bottle range the catalog is loaded with
// at startup.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Name:        "Azure Classic",
			Price:       29.99,
			Image:       "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=600&auto=format&fit=crop",
			Category:    "Classic",
			IsNew:       true,
			Description: "Our bestselling water bottle with a sleek design and double-wall insulation. Perfect for keeping your beverages at the ideal temperature throughout the day.",
		},
		{
			ID:          2,
			Name:        "Eco Thermal",
			Price:       34.99,
			Image:       "https://images.unsplash.com/photo-1581152309595-c304b4d05c14?w=600&auto=format&fit=crop",
			Category:    "Thermal",
			Description: "Eco-friendly thermal bottle made from recycled materials. Designed with sustainability in mind while offering premium insulation for your hot and cold drinks.",
		},
		{
			ID:          3,
			Name:        "Summit Insulated",
			Price:       39.99,
			Image:       "https://images.unsplash.com/photo-1610631687337-04552bfb8d85?w=600&auto=format&fit=crop",
			Category:    "Insulated",
			Description: "Perfect for hiking and outdoor adventures with 24hr temperature retention. The rugged design withstands the toughest conditions while keeping your drinks perfectly chilled or hot.",
		},
		{
			ID:          4,
			Name:        "Minimalist Sleek",
			Price:       24.99,
			Image:       "https://images.unsplash.com/photo-1610631787330-c3eac43fbf60?w=600&auto=format&fit=crop",
			Category:    "Modern",
			IsNew:       true,
			Description: "Clean, minimalist design with premium materials for everyday use. This bottle combines aesthetic appeal with functionality, making it the perfect companion for your daily hydration needs.",
		},
		{
			ID:          5,
			Name:        "Adventure Pro",
			Price:       42.99,
			Image:       "https://images.unsplash.com/photo-1578598336954-4e34b3ba67ef?w=600&auto=format&fit=crop",
			Category:    "Sports",
			Description: "Built for adventure with a durable exterior and leak-proof cap. Engineered to withstand extreme conditions while keeping your beverages secure, whether you're climbing mountains or exploring new trails.",
		},
		{
			ID:          6,
			Name:        "Urban Glass",
			Price:       32.99,
			Image:       "https://images.unsplash.com/photo-1615062631393-99b145f47bea?w=600&auto=format&fit=crop",
			Category:    "Glass",
			Description: "Stylish glass bottle with silicone sleeve for urban lifestyles. The perfect blend of elegance and functionality, designed for the modern city dweller who values both style and sustainability.",
		},
		{
			ID:          7,
			Name:        "Stainless Steel Elite",
			Price:       36.99,
			Image:       "https://images.unsplash.com/photo-1556895116-bc12e3005b2f?w=600&auto=format&fit=crop",
			Category:    "Stainless Steel",
			Description: "Premium stainless steel bottle that keeps drinks cold for 48 hours. The vacuum-sealed double-wall construction ensures optimal temperature retention while the durable exterior resists dents and scratches.",
		},
		{
			ID:          8,
			Name:        "Kids Explorer",
			Price:       19.99,
			Image:       "https://images.unsplash.com/photo-1575366297858-8a5d3c76cc10?w=600&auto=format&fit=crop",
			Category:    "Kids",
			Description: "Fun, kid-friendly design with easy-to-use straw and carry handle. Designed specifically for children, this bottle combines playful aesthetics with practical features to encourage healthy hydration habits.",
		},
	}
}
