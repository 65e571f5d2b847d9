package service

import (
	"github.com/shopspring/decimal"

	"github.com/PrintfAman/nexo/internal/entity"
)

// DefaultCatalog returns the products a fresh store starts with.
func DefaultCatalog() []entity.NewProduct {
	p := func(name, price, category, image, description string) entity.NewProduct {
		return entity.NewProduct{
			Name:        name,
			Category:    category,
			Price:       decimal.RequireFromString(price),
			Image:       image,
			Description: description,
			Stock:       entity.DefaultStock,
		}
	}

	return []entity.NewProduct{
		p("Korean Pant", "2799.00", "women", "https://images.unsplash.com/photo-1594633312681-425c7b97ccd1?w=800&h=1000&fit=crop&q=80", "Comfortable Korean style pants perfect for casual wear"),
		p("Pinstripe Pyjama", "1250.00", "women", "https://images.unsplash.com/photo-1584299574144-b5f8ac209707?w=800&h=1000&fit=crop&q=80", "Cozy pinstripe pyjama set for relaxed evenings"),
		p("Formal Shirt", "2299.00", "men", "https://images.unsplash.com/photo-1598032895397-b9472444bf93?w=800&h=1000&fit=crop&q=80", "Classic formal shirt for business occasions"),
		p("Relaxed Hoodie", "1799.00", "unisex", "https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=800&h=1000&fit=crop&q=80", "Soft cozy hoodie for everyday comfort"),
		p("Denim Jacket", "3499.00", "men", "https://images.unsplash.com/photo-1495105787522-5334e3ffa0ef?w=800&h=1000&fit=crop&q=80", "Timeless denim jacket with modern fit"),
		p("Floral Dress", "2999.00", "women", "https://images.unsplash.com/photo-1572804013309-59a88b7e92f1?w=800&h=1000&fit=crop&q=80", "Lightweight floral dress for sunny days"),
		p("Sneaker Run", "3999.00", "footwear", "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=800&h=1000&fit=crop&q=80", "Comfortable sneakers with great support"),
		p("Leather Belt", "799.00", "accessories", "https://images.unsplash.com/photo-1553981834-a23f5b69e3ec?w=800&h=1000&fit=crop&q=80", "Genuine leather belt"),
		p("Baseball Cap", "599.00", "accessories", "https://images.unsplash.com/photo-1588850561407-ed78c282e89b?w=800&h=1000&fit=crop&q=80", "Stylish cap for daily use"),
		p("Cargo Shorts", "1599.00", "men", "https://images.unsplash.com/photo-1555689502-c4b22d76c56f?w=800&h=1000&fit=crop&q=80", "Casual cargo shorts with pockets"),
		p("Silk Scarf", "1299.00", "women", "https://images.unsplash.com/photo-1674768015404-7aabcf6e9066?auto=format&fit=crop&q=80&w=764", "Elegant silk scarf to elevate outfits"),
		p("Running Shorts", "999.00", "unisex", "https://images.unsplash.com/photo-1591195853828-11db59a44f6b?auto=format&fit=crop&q=80&w=1170", "Breathable shorts for workouts"),
	}
}
