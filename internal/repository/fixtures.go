package repository

import "restaurant-admin/internal/domain"

func MenuFixtures() []domain.MenuItem {
	return []domain.MenuItem{
		{
			Name:        "Margherita Pizza",
			Category:    "Pizza",
			Price:       12.99,
			Description: "Classic tomato and mozzarella pizza",
			Image:       "/assets/pizza.jpg",
		},
		{
			Name:        "Caesar Salad",
			Category:    "Salads",
			Price:       8.99,
			Description: "Fresh romaine lettuce with Caesar dressing",
			Image:       "/assets/salad.jpg",
		},
		{
			Name:        "Spaghetti Bolognese",
			Category:    "Pasta",
			Price:       14.99,
			Description: "Spaghetti with meat sauce",
			Image:       "/assets/pasta.jpg",
		},
	}
}

func OrderFixtures() []domain.Order {
	return []domain.Order{
		{
			TableNumber: 5,
			Items: []domain.OrderItem{
				{Name: "Margherita Pizza", Quantity: 2, Price: 12.99},
				{Name: "Caesar Salad", Quantity: 1, Price: 8.99},
			},
			Status:    domain.OrderPending,
			Total:     34.97,
			Timestamp: "2024-03-20 14:30",
		},
		{
			TableNumber: 3,
			Items: []domain.OrderItem{
				{Name: "Spaghetti Bolognese", Quantity: 1, Price: 14.99},
				{Name: "Garlic Bread", Quantity: 2, Price: 4.99},
			},
			Status:    domain.OrderPreparing,
			Total:     24.97,
			Timestamp: "2024-03-20 14:25",
		},
	}
}

func ReservationFixtures() []domain.Reservation {
	return []domain.Reservation{
		{
			CustomerName:    "John Doe",
			Date:            "2024-03-20",
			Time:            "19:00",
			PartySize:       4,
			TableNumber:     5,
			Status:          domain.ReservationConfirmed,
			SpecialRequests: "Window seat preferred",
		},
		{
			CustomerName:    "Jane Smith",
			Date:            "2024-03-20",
			Time:            "20:30",
			PartySize:       2,
			TableNumber:     3,
			Status:          domain.ReservationPending,
			SpecialRequests: "Allergic to nuts",
		},
	}
}

func StaffFixtures() []domain.StaffMember {
	return []domain.StaffMember{
		{
			Name:     "Michael Johnson",
			Role:     domain.RoleManager,
			Email:    "michael@restaurant.com",
			Phone:    "555-0123",
			Status:   domain.StaffActive,
			JoinDate: "2023-01-15",
		},
		{
			Name:     "Sarah Williams",
			Role:     domain.RoleChef,
			Email:    "sarah@restaurant.com",
			Phone:    "555-0124",
			Status:   domain.StaffActive,
			JoinDate: "2023-03-20",
		},
	}
}

func FeaturedDishes() []domain.Dish {
	return []domain.Dish{
		{ID: 1, Name: "Signature Pasta", Image: "/assets/pasta.jpg", Description: "Our chef's special pasta with homemade sauce"},
		{ID: 2, Name: "Grilled Salmon", Image: "/assets/salmon.jpg", Description: "Fresh Atlantic salmon with seasonal vegetables"},
		{ID: 3, Name: "Classic Burger", Image: "/assets/burger.jpg", Description: "Premium beef patty with special sauce"},
		{ID: 4, Name: "Caesar Salad", Image: "/assets/salad.jpg", Description: "Fresh romaine lettuce with parmesan and croutons"},
	}
}
