package catalog

// SeedProducts returns a fresh copy of the launch catalog, ids 1..15.
func SeedProducts() []Product {
	return []Product{
		{
			ID:           1,
			Name:         "Cat Print Summer Dress",
			Description:  ptr("A beautiful cat-patterned summer dress perfect for showing off your feline fashion sense."),
			Price:        49.99,
			ImageURL:     "https://images.unsplash.com/photo-1529139574466-a303027c1d8b?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
			Category:     "women",
			Subcategory:  ptr("dresses"),
			IsNewArrival: true,
			IsBestSeller: false,
			IsOnSale:     false,
			InStock:      true,
			Rating:       4,
			ReviewCount:  42,
		},
		{
			ID:           2,
			Name:         "Men's Cat Motif Blazer",
			Description:  ptr("A stylish casual blazer with subtle cat embroidery that adds personality to any outfit."),
			Price:        89.99,
			ImageURL:     "https://images.unsplash.com/photo-1620012253295-c15cc3e65df4?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
			Category:     "men",
			Subcategory:  ptr("jackets"),
			IsNewArrival: false,
			IsBestSeller: true,
			IsOnSale:     false,
			InStock:      true,
			Rating:       4.5,
			ReviewCount:  87,
		},
		{
			ID:           3,
			Name:         "Kitty Paw Blouse",
			Description:  ptr("A versatile white blouse with adorable kitty paw details on the collar and cuffs."),
			Price:        39.99,
			ImageURL:     "https://images.unsplash.com/photo-1434389677669-e08b4cac3105?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
			Category:     "women",
			Subcategory:  ptr("tops"),
			IsNewArrival: false,
			IsBestSeller: false,
			IsOnSale:     false,
			InStock:      true,
			Rating:       4,
			ReviewCount:  23,
		},
		{
			ID:           4,
			Name:         "Cat Whisker Denim Jeans",
			Description:  ptr("Timeless denim jeans with cat whisker fading details and a comfortable stretch fit."),
			Price:        59.99,
			SalePrice:    ptr(45.99),
			ImageURL:     "https://images.unsplash.com/photo-1473966968600-fa801b869a1a?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
			Category:     "men",
			Subcategory:  ptr("pants"),
			IsNewArrival: false,
			IsBestSeller: false,
			IsOnSale:     true,
			InStock:      true,
			Rating:       5,
			ReviewCount:  56,
		},
		{
			ID:           5,
			Name:         "Cat Striped Summer Shirt",
			Description:  ptr("A cool and breezy shirt with cat-shaped stripes for hot summer days."),
			Price:        34.99,
			ImageURL:     "https://images.unsplash.com/photo-1596755094514-f87e34085b2c?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
			Category:     "men",
			Subcategory:  ptr("shirts"),
			IsNewArrival: true,
			IsBestSeller: false,
			IsOnSale:     false,
			InStock:      true,
			Rating:       4,
			ReviewCount:  18,
		},
		{
			ID:           6,
			Name:         "Feline Grace Evening Gown",
			Description:  ptr("A stunning evening gown with cat silhouette embellishments for special occasions."),
			Price:        129.99,
			SalePrice:    ptr(99.99),
			ImageURL:     "https://images.unsplash.com/photo-1490091119006-53a458e64019?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
			Category:     "women",
			Subcategory:  ptr("dresses"),
			IsNewArrival: false,
			IsBestSeller: false,
			IsOnSale:     true,
			InStock:      true,
			Rating:       4.5,
			ReviewCount:  36,
		},
		{
			ID:           7,
			Name:         "Cat Face Crossbody Bag",
			Description:  ptr("A stylish and practical leather crossbody bag with cat face design for the cat lover."),
			Price:        79.99,
			ImageURL:     "https://images.unsplash.com/photo-1590874103328-eac38a683ce7?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
			Category:     "accessories",
			Subcategory:  ptr("bags"),
			IsNewArrival: false,
			IsBestSeller: true,
			IsOnSale:     false,
			InStock:      true,
			Rating:       4.5,
			ReviewCount:  62,
		},
		{
			ID:           8,
			Name:         "Kitten Ears Knit Sweater",
			Description:  ptr("A cozy knit sweater with adorable kitten ear details on the hood, perfect for cat lovers."),
			Price:        54.99,
			SalePrice:    ptr(42.99),
			ImageURL:     "https://images.unsplash.com/photo-1576566588028-4147f3842f27?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
			Category:     "women",
			Subcategory:  ptr("sweaters"),
			IsNewArrival: false,
			IsBestSeller: false,
			IsOnSale:     true,
			InStock:      true,
			Rating:       4,
			ReviewCount:  29,
		},
		{
			ID:           9,
			Name:         "Cat Paw Watch",
			Description:  ptr("A sleek minimalist watch with cat paw hour markers that complements any outfit."),
			Price:        119.99,
			ImageURL:     "https://images.unsplash.com/photo-1524592094714-0f0654e20314?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
			Category:     "accessories",
			Subcategory:  ptr("watches"),
			IsNewArrival: true,
			IsBestSeller: true,
			IsOnSale:     false,
			InStock:      true,
			Rating:       5,
			ReviewCount:  48,
		},
		{
			ID:           10,
			Name:         "Cat Pounce Sneakers",
			Description:  ptr("Comfortable athletic sneakers with cat paw print soles that leave cute tracks when you walk."),
			Price:        89.99,
			ImageURL:     "https://images.unsplash.com/photo-1560769629-975ec94e6a86?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
			Category:     "accessories",
			Subcategory:  ptr("shoes"),
			IsNewArrival: true,
			IsBestSeller: false,
			IsOnSale:     false,
			InStock:      true,
			Rating:       4.5,
			ReviewCount:  37,
		},
		{
			ID:           11,
			Name:         "Catnip Scented T-Shirt",
			Description:  ptr("A comfortable cotton t-shirt with a playful cat graphic and a subtle catnip scent that cats love."),
			Price:        29.99,
			ImageURL:     "https://images.unsplash.com/photo-1583743814966-8936f5b7be1a?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
			Category:     "men",
			Subcategory:  ptr("t-shirts"),
			IsNewArrival: true,
			IsBestSeller: false,
			IsOnSale:     false,
			InStock:      true,
			Rating:       4.2,
			ReviewCount:  28,
		},
		{
			ID:           12,
			Name:         "Cat Eye Sunglasses",
			Description:  ptr("Classic cat eye sunglasses with UV protection and a stylish feline flair."),
			Price:        35.99,
			ImageURL:     "https://images.unsplash.com/photo-1577803645773-f96470509666?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
			Category:     "accessories",
			Subcategory:  ptr("eyewear"),
			IsNewArrival: false,
			IsBestSeller: true,
			IsOnSale:     false,
			InStock:      true,
			Rating:       4.8,
			ReviewCount:  53,
		},
		{
			ID:           13,
			Name:         "9 Lives Leather Jacket",
			Description:  ptr("A premium leather jacket with '9 Lives' embroidered on the back and subtle cat details."),
			Price:        199.99,
			SalePrice:    ptr(149.99),
			ImageURL:     "https://images.unsplash.com/photo-1551028719-00167b16eac5?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
			Category:     "men",
			Subcategory:  ptr("jackets"),
			IsNewArrival: false,
			IsBestSeller: false,
			IsOnSale:     true,
			InStock:      true,
			Rating:       4.9,
			ReviewCount:  42,
		},
		{
			ID:           14,
			Name:         "Meow Meow Beanie",
			Description:  ptr("A warm knitted beanie with cat ears and 'Meow Meow' text, perfect for cold weather."),
			Price:        24.99,
			ImageURL:     "https://images.unsplash.com/photo-1576871337632-b9aef4c17ab9?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
			Category:     "accessories",
			Subcategory:  ptr("hats"),
			IsNewArrival: true,
			IsBestSeller: false,
			IsOnSale:     false,
			InStock:      true,
			Rating:       4.3,
			ReviewCount:  21,
		},
		{
			ID:           15,
			Name:         "Purr-fect Pajama Set",
			Description:  ptr("A comfortable pajama set with an all-over cat print design for the ultimate cat nap."),
			Price:        45.99,
			ImageURL:     "https://images.unsplash.com/photo-1618333842686-06ecfd094e0b?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&q=80",
			Category:     "women",
			Subcategory:  ptr("sleepwear"),
			IsNewArrival: false,
			IsBestSeller: true,
			IsOnSale:     false,
			InStock:      true,
			Rating:       4.7,
			ReviewCount:  68,
		},
	}
}

func ptr[T any](v T) *T { return &v }
