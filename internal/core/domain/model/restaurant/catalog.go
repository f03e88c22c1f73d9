package restaurant

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// Catalog returns the restaurants served by this deployment.
func Catalog() []*Restaurant {
	return []*Restaurant{
		mustRestaurant("rest-1", "Tokyo Ramen House", "1-1-1 Shibuya, Tokyo", "03-1234-5678",
			35.6586, 139.7454, 15*time.Minute),
		mustRestaurant("rest-2", "Sushi Master", "2-2-2 Ginza, Tokyo", "03-2345-6789",
			35.6739, 139.7658, 20*time.Minute),
		mustRestaurant("rest-3", "Burger Palace", "3-3-3 Harajuku, Tokyo", "03-3456-7890",
			35.6702, 139.7037, 10*time.Minute),
	}
}

func mustRestaurant(id, name, address, phone string, lat, lon float64, prep time.Duration) *Restaurant {
	r, err := NewRestaurant(id, name, address, phone, kernel.MustNewLocation(lat, lon, time.Time{}), prep)
	if err != nil {
		panic(err)
	}
	return r
}
